package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bucketlist/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)

	tests := []struct {
		name          string
		email         string
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:  "Success",
			email: "a@x.com",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
					AddRow(1, "a", "a@x.com", "$2a$hash")
				mock.ExpectQuery(query).WithArgs("a@x.com", 1).WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "a", Email: "a@x.com"},
		},
		{
			name:  "Not Found",
			email: "nobody@x.com",
			mockBehavior: func() {
				mock.ExpectQuery(query).WithArgs("nobody@x.com", 1).WillReturnError(gorm.ErrRecordNotFound)
			},
		},
		{
			name:  "Database Error",
			email: "a@x.com",
			mockBehavior: func() {
				mock.ExpectQuery(query).WithArgs("a@x.com", 1).WillReturnError(errors.New("connection reset"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByEmail(ctx, tt.email)

			switch {
			case tt.expectedError:
				require.Error(t, err)
				assert.True(t, models.IsCode(err, models.CodeInternal))
			case tt.expectedUser == nil:
				assert.NoError(t, err)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.expectedUser.Username, user.Username)
				assert.Equal(t, tt.expectedUser.Email, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	insert := `INSERT INTO "users"`

	newUser := func() *models.User {
		now := time.Now()
		return &models.User{
			Email:        "a@x.com",
			Username:     "a",
			FirstName:    "A",
			LastName:     "B",
			PasswordHash: "$2a$hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insert).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectCommit()

		user := newUser()
		require.NoError(t, repo.Create(context.Background(), user))
		assert.Equal(t, uint(42), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unique Violation", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insert).WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_users_email\""})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), newUser())
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeConflict))
		assert.Equal(t, 409, models.StatusFor(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Other Failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insert).WillReturnError(&pgconn.PgError{Code: "23502", Message: "null value"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), newUser())
		assert.True(t, models.IsCode(err, models.CodeInternal))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}
