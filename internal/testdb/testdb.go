// Package testdb opens the Postgres database used by handler tests.
package testdb

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/pkg/database"
)

// Open loads TEST_DATABASE_URL, connects, migrates and truncates every table
// after the test. Tests are skipped when the variable is unset.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	_ = godotenv.Load()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is empty")
	}
	db, err := database.Open(dsn, false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Truncate AFTER each test (data survives within a single test).
	t.Cleanup(func() {
		sql := `
TRUNCATE TABLE
	employee_histories,
	employee_allowances,
	assets,
	employees,
	clients,
	organizations,
	users
RESTART IDENTITY CASCADE`
		if err := db.Exec(sql).Error; err != nil {
			t.Logf("truncate failed (ignored): %v", err)
		}
	})
	return db
}
