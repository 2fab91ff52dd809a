// Package testutil provides a migrated Postgres database for store tests.
package testutil

import (
	"os"
	"sync"
	"testing"

	"emb-site/database"

	"gorm.io/gorm"
)

var (
	once    sync.Once
	shared  *gorm.DB
	openErr error
)

// tables are truncated between tests, children first.
var tables = []string{"donations", "admin_accounts", "settings", "gallery", "news", "classes", "sections", "pages"}

// DB returns the shared test database, skipping the test when TEST_DB_URL
// is not set. Every table is emptied before the test runs.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set; skipping database test")
	}

	once.Do(func() {
		shared, openErr = database.Open(dsn)
		if openErr == nil {
			openErr = database.Migrate(shared)
		}
	})
	if openErr != nil {
		t.Fatalf("open test database: %v", openErr)
	}

	for _, tbl := range tables {
		if err := shared.Exec("TRUNCATE TABLE " + tbl + " CASCADE").Error; err != nil {
			t.Fatalf("truncate %s: %v", tbl, err)
		}
	}
	return shared
}
