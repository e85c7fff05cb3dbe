// Package testdb opens a migrated in-memory SQLite database for tests.
package testdb

import (
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database. It holds a single connection, so code
// running inside a transaction must query through the transaction handle.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}
