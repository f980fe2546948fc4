package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bucketlist/internal/config"
	"bucketlist/internal/middleware"
	"bucketlist/internal/models"

	"gorm.io/gorm"
)

// Schema modes selected by DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// PersistentModels lists every table managed by AutoMigrate.
func PersistentModels() []any {
	return []any{&models.User{}, &models.Bucketlist{}, &models.Item{}}
}

// AutoMigrate creates or updates the tables of PersistentModels.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// SchemaPlan says which schema steps run for a database.
type SchemaPlan struct {
	Mode string
	SQL  bool
	Auto bool
}

// PlanSchema resolves DB_SCHEMA_MODE against the environment and driver. The SQL scripts
// are PostgreSQL-only, so SQLite is always built with AutoMigrate. AutoMigrate never runs
// against a production-like PostgreSQL database.
func PlanSchema(cfg *config.Config) (SchemaPlan, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	if mode == "" {
		mode = SchemaModeHybrid
	}
	if mode != SchemaModeHybrid && mode != SchemaModeSQL && mode != SchemaModeAuto {
		return SchemaPlan{}, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}

	plan := SchemaPlan{Mode: mode}
	if driverName(cfg) == DriverSQLite {
		plan.Auto = true
		return plan, nil
	}

	prodLike := isProdLikeEnv(cfg.Env)
	switch mode {
	case SchemaModeSQL:
		plan.SQL = true
	case SchemaModeAuto:
		if prodLike {
			return SchemaPlan{}, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q", cfg.Env)
		}
		plan.Auto = true
	case SchemaModeHybrid:
		plan.SQL = true
		plan.Auto = !prodLike
	}
	return plan, nil
}

func isProdLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod", "staging", "stage":
		return true
	}
	return false
}

// ApplySchema executes the plan for cfg: embedded SQL migrations first, then AutoMigrate.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return err
	}

	if plan.SQL {
		migrations, err := EmbeddedMigrations()
		if err != nil {
			return err
		}
		if _, err := NewMigrator(db, migrations).Up(ctx); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}

	if plan.Auto {
		middleware.Logger.InfoContext(ctx, "Running GORM AutoMigrate", slog.String("mode", plan.Mode), slog.String("env", cfg.Env))
		if err := AutoMigrate(db.WithContext(ctx)); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// SchemaStatus reports the plan for cfg and, when SQL migrations are part of it, their progress.
type SchemaStatus struct {
	Plan    SchemaPlan
	Env     string
	Applied []int
	Pending []Migration
}

func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return nil, err
	}
	status := &SchemaStatus{Plan: plan, Env: cfg.Env}
	if !plan.SQL {
		return status, nil
	}

	migrations, err := EmbeddedMigrations()
	if err != nil {
		return nil, err
	}
	migrator := NewMigrator(db, migrations)
	if status.Applied, err = migrator.Applied(ctx); err != nil {
		return nil, err
	}
	if status.Pending, err = migrator.Pending(ctx); err != nil {
		return nil, err
	}
	return status, nil
}
