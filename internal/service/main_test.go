package service

import (
	"testing"

	"devlink/internal/cache"
	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an isolated in-memory SQLite database with the full
// schema. The connection pool is pinned to one connection so the in-memory
// database is shared across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	// No Redis in unit tests; the cache layer degrades to direct fetches.
	cache.SetClient(nil)

	return db
}

// appCode asserts err is an application error and returns its code.
func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}
