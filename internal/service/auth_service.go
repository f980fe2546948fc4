// Package service holds the business rules behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bucketlist/internal/auth"
	"bucketlist/internal/middleware"
	"bucketlist/internal/models"
	"bucketlist/internal/repository"
	"bucketlist/internal/validation"
)

type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenCodec
	bcryptCost int
	now        func() time.Time
}

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a user together with a freshly issued bearer token.
type AuthResult struct {
	User  *models.User
	Token string
}

// NewAuthService returns an AuthService. bcryptCost 0 selects bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenCodec, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// NormalizeEmail lowercases and trims an email so it can be used as an identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (_ *AuthResult, err error) {
	defer func() { recordAuthEvent("register", err) }()

	in.Email = NormalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}
	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords are reported identically.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (_ *AuthResult, err error) {
	defer func() { recordAuthEvent("login", err) }()

	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, in.Password) {
		return nil, models.NewValidationError("Invalid email or password")
	}

	token, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Authenticate decodes a bearer token into the identity it was issued for.
func (s *AuthService) Authenticate(token string) (_ string, err error) {
	defer func() { recordAuthEvent("decode", err) }()

	identity, err := s.tokens.Decode(token, s.now())
	switch {
	case err == nil:
		return identity, nil
	case errors.Is(err, auth.ErrTokenExpired):
		return "", models.NewUnauthenticatedError("Token has expired. Please log in again")
	default:
		return "", models.NewUnauthenticatedError("Invalid token. Please log in again")
	}
}

// Me loads the profile of an authenticated identity.
func (s *AuthService) Me(ctx context.Context, identity string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, identity)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("User no longer exists")
	}
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	checks := []error{
		validation.ValidateEmail(in.Email),
		validation.ValidateUsername(in.Username),
		validation.ValidateName("first_name", in.FirstName),
		validation.ValidateName("last_name", in.LastName),
		validation.ValidatePassword(in.Password),
	}
	for _, err := range checks {
		if err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

func recordAuthEvent(event string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	middleware.AuthEvents.WithLabelValues(event, outcome).Inc()
}
