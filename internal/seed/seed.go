// Package seed populates a database with demo users, bucketlists and items.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"bucketlist/internal/auth"
	"bucketlist/internal/middleware"
	"bucketlist/internal/models"
	"bucketlist/internal/repository"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers           int
	BucketlistsPerUser int
	ItemsPerList       int
	Password           string
	BcryptCost         int
	RandomSeed         int64
	ShouldClean        bool
}

// Summary counts what a seeding run created.
type Summary struct {
	Users       []*models.User
	Bucketlists int
	Items       int
}

// Seed creates demo data in a single transaction. Every user's password is opts.Password.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	if opts.Password == "" {
		return nil, fmt.Errorf("seed password must not be empty")
	}

	if opts.ShouldClean {
		if err := clearData(ctx, db); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	hash, err := auth.HashPassword(opts.Password, opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	factory := NewFactory(opts.RandomSeed)
	users := repository.NewUserRepository(db)
	bucketlists := repository.NewBucketlistRepository(db, nil)
	items := repository.NewItemRepository(db)

	summary := &Summary{}
	err = repository.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		for u := 1; u <= opts.NumUsers; u++ {
			user := factory.BuildUser(u, hash)
			if err := users.Create(ctx, user); err != nil {
				return fmt.Errorf("create user %s: %w", user.Email, err)
			}
			summary.Users = append(summary.Users, user)

			for b := 1; b <= opts.BucketlistsPerUser; b++ {
				bucketlist := factory.BuildBucketlist(user, b)
				if err := bucketlists.Create(ctx, bucketlist); err != nil {
					return fmt.Errorf("create bucketlist: %w", err)
				}
				summary.Bucketlists++

				for i := 1; i <= opts.ItemsPerList; i++ {
					if err := items.Create(ctx, factory.BuildItem(bucketlist, i)); err != nil {
						return fmt.Errorf("create item: %w", err)
					}
					summary.Items++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", len(summary.Users)),
		slog.Int("bucketlists", summary.Bucketlists),
		slog.Int("items", summary.Items),
	)
	return summary, nil
}

// clearData removes all rows, children first.
func clearData(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&models.Item{}, &models.Bucketlist{}, &models.User{}} {
		if err := tx.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
