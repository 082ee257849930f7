package testutils

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/propside/portal-go/internal/domain/contract"
	"github.com/propside/portal-go/internal/domain/document"
	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database with the full schema
// migrated. Each call gets a private database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&template.Template{},
		&document.Document{},
		&document.Signature{},
		&contract.Contract{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
