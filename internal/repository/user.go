// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"bucketlist/internal/models"
	"bucketlist/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByEmail returns (nil, nil) when no user has the email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user *models.User, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "GetByEmail", "users")
	defer func() { observability.EndSpan(span, err) }()

	var u models.User
	if err := conn(ctx, r.db).Where("email = ?", email).First(&u).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &u, nil
}

// GetByUsername returns (nil, nil) when no user has the username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := conn(ctx, r.db).Where("username = ?", username).First(&u).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Create", "users")
	defer func() { observability.EndSpan(span, err) }()

	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	result := conn(ctx, r.db).Model(&models.User{ID: user.ID}).Updates(map[string]any{
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"password_hash": user.PasswordHash,
		"is_admin":      user.IsAdmin,
	})
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", user.ID)
	}
	return nil
}
