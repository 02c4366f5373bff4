// Package testdb provides throwaway databases for tests.
package testdb

import (
	"testing"

	"tabungan/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory SQLite database private to the test.
//
// Usage:
//
//	func TestLedger(t *testing.T) {
//	    gdb := testdb.Open(t)
//	    st := store.New(gdb)
//	    // ... test
//	}
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// Seeded is Open followed by the default seed, demo student included.
func Seeded(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := Open(t)
	require.NoError(t, db.Seed(gdb, true))
	return gdb
}
