package store_test

import (
	"testing"

	"book_market/internal/db"
	"book_market/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with the same schema and
// duplicate-key translation as the MySQL setup. A single connection keeps
// every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(conn))
	return conn
}

// seedUser inserts a user directly, bypassing registration
func seedUser(t *testing.T, conn *gorm.DB, username string, balance float64, isSeller bool) *domain.User {
	t.Helper()

	user := domain.User{Username: username, Password: "x", Balance: balance, IsSeller: isSeller}
	require.NoError(t, conn.Create(&user).Error)
	return &user
}
