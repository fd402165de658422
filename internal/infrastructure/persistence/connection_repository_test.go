package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frituurapp/backend/internal/domain/possync"
)

func TestGormConnectionRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConnectionRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	conn, err := possync.NewConnection(shopID, "https://pos.example.com", "license", "token")
	require.NoError(t, err)
	conn.Direction = possync.DirectionBoth
	require.NoError(t, repo.Save(ctx, conn))

	retrieved, err := repo.FindByShop(ctx, shopID)
	require.NoError(t, err)
	assert.Equal(t, "https://pos.example.com", retrieved.BaseURL)
	assert.Equal(t, possync.DirectionBoth, retrieved.Direction)
	assert.True(t, retrieved.Enabled)
}

func TestGormConnectionRepository_FindByShopNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConnectionRepository(db)

	_, err := repo.FindByShop(context.Background(), uuid.New())
	assert.ErrorIs(t, err, possync.ErrConnectionNotFound)
}
