package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"bucketlist/internal/middleware"

	"gorm.io/gorm"
)

// SchemaVersion records one applied migration.
type SchemaVersion struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (SchemaVersion) TableName() string {
	return "schema_versions"
}

// Migrator applies and reverts a fixed set of migrations, tracking progress in schema_versions.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB, migrations []Migration) *Migrator {
	return &Migrator{db: db, migrations: migrations}
}

// Applied returns the recorded versions in ascending order.
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&SchemaVersion{}); err != nil {
		return nil, fmt.Errorf("ensure schema_versions: %w", err)
	}
	var versions []int
	if err := db.Model(&SchemaVersion{}).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("read schema_versions: %w", err)
	}
	return versions, nil
}

// Pending returns the migrations not yet applied. A recorded version this binary does not
// know about is an error: the database is ahead of the code.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, v := range applied {
		if _, ok := m.find(v); !ok {
			unknown = append(unknown, fmt.Sprintf("%06d", v))
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("schema_versions has versions unknown to this build: %s", strings.Join(unknown, ", "))
	}

	var pending []Migration
	for _, mig := range m.migrations {
		if !slices.Contains(applied, mig.Version) {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Up applies every pending migration, each in its own transaction, and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for i, mig := range pending {
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mig.Up).Error; err != nil {
				return fmt.Errorf("apply %s: %w", mig, err)
			}
			return tx.Create(&SchemaVersion{Version: mig.Version, Name: mig.Name}).Error
		})
		if err != nil {
			return i, err
		}
		middleware.Logger.InfoContext(ctx, "Migration applied", slog.String("migration", mig.String()))
	}
	return len(pending), nil
}

// Down reverts one applied migration.
func (m *Migrator) Down(ctx context.Context, version int) error {
	mig, ok := m.find(version)
	if !ok {
		return fmt.Errorf("migration %d not found", version)
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(mig.Down).Error; err != nil {
			return fmt.Errorf("revert %s: %w", mig, err)
		}
		return tx.Where("version = ?", version).Delete(&SchemaVersion{}).Error
	})
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "Migration reverted", slog.String("migration", mig.String()))
	return nil
}

func (m *Migrator) find(version int) (Migration, bool) {
	for _, mig := range m.migrations {
		if mig.Version == version {
			return mig, true
		}
	}
	return Migration{}, false
}
