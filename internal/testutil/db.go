// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"gorm.io/gorm"

	"threadai/internal/db"
	"threadai/internal/model"
)

// NewDB opens a migrated in-memory sqlite database private to the test.
// The pool is pinned to one connection because every new connection to
// ":memory:" would otherwise see an empty database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return gormDB
}

// CreateUser inserts a user with the given email and name.
func CreateUser(t *testing.T, gormDB *gorm.DB, email, name string) *model.User {
	t.Helper()

	user := &model.User{Email: email, Name: name}
	if err := gormDB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
