package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/ordering"
	"github.com/frituurapp/backend/internal/domain/possync"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Subproduct{},
		&catalog.ModifierGroupAssignment{},
		&ordering.Order{},
		&ordering.OrderLine{},
		&possync.Connection{},
		&possync.SyncRun{},
	)
	require.NoError(t, err)

	return db
}
