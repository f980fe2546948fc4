// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"bucketlist/internal/auth"
	"bucketlist/internal/database"
	"bucketlist/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewSQLiteDB opens a private in-memory SQLite database with the full schema applied.
// The pool is pinned to one connection so every query sees the same memory database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory", dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(dsn)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given email and password "pw".
func CreateUser(t testing.TB, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
	}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
