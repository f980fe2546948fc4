// Package bootstrap wires runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bucketlist/internal/auth"
	"bucketlist/internal/cache"
	"bucketlist/internal/config"
	"bucketlist/internal/database"
	"bucketlist/internal/middleware"
	"bucketlist/internal/models"
	"bucketlist/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and bootstraps the development admin.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.InitRedis(cfg.RedisURL)

	if err := ensureDevAdmin(context.Background(), cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	return db, r, nil
}

// ensureDevAdmin creates or promotes the configured admin account in development.
func ensureDevAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "admin"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@bucketlist.local"
	}
	if cfg.DevAdminPassword == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hash, err := auth.HashPassword(cfg.DevAdminPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	users := repository.NewUserRepository(db)
	err = repository.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		admin, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if admin == nil {
			return users.Create(ctx, &models.User{
				Email:        email,
				Username:     username,
				FirstName:    "Admin",
				LastName:     "User",
				PasswordHash: hash,
				IsAdmin:      true,
			})
		}
		if admin.IsAdmin {
			return nil
		}
		admin.IsAdmin = true
		return users.Update(ctx, admin)
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("development admin bootstrap ensured", slog.String("email", email))
	return nil
}
