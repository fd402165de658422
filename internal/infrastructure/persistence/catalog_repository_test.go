package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/shared"
)

func TestGormCategoryRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	category, err := catalog.NewCategory(shopID, "Snacks")
	require.NoError(t, err)
	category.SortOrder = 2
	require.NoError(t, repo.Save(ctx, category))

	retrieved, err := repo.FindByID(ctx, shopID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Snacks", retrieved.Name)
	assert.Equal(t, 2, retrieved.SortOrder)
	assert.Nil(t, retrieved.RemoteID)
}

func TestGormCategoryRepository_FindByIDWrongShop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory(uuid.New(), "Snacks")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	_, err = repo.FindByID(ctx, uuid.New(), category.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCategoryRepository_FindAllForShop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	for _, name := range []string{"Drinks", "Snacks"} {
		category, err := catalog.NewCategory(shopID, name)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, category))
	}
	other, err := catalog.NewCategory(uuid.New(), "Elsewhere")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	categories, err := repo.FindAllForShop(ctx, shopID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
}

func TestGormCategoryRepository_SavePersistsRemoteLink(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	category, err := catalog.NewCategory(shopID, "Snacks")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	category.LinkRemote(42)
	require.NoError(t, repo.Save(ctx, category))

	retrieved, err := repo.FindByID(ctx, shopID, category.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.RemoteID)
	assert.Equal(t, int64(42), *retrieved.RemoteID)
}

func TestGormProductRepository_FindLoadsAssociations(t *testing.T) {
	db := setupTestDB(t)
	productRepo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	category, err := catalog.NewCategory(shopID, "Snacks")
	require.NoError(t, err)
	require.NoError(t, categoryRepo.Save(ctx, category))

	product, err := catalog.NewProduct(shopID, "Fries", decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, product))

	require.NoError(t, db.Model(product).Association("Categories").Append(category))

	group, err := catalog.NewModifierGroupAssignment(product.ID, 1, "Sauce", []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	require.NoError(t, db.Create(group).Error)

	retrieved, err := productRepo.FindByID(ctx, shopID, product.ID)
	require.NoError(t, err)
	require.Len(t, retrieved.Categories, 1)
	assert.Equal(t, "Snacks", retrieved.Categories[0].Name)
	require.Len(t, retrieved.ModifierGroups, 1)
	assert.Equal(t, "Sauce", retrieved.ModifierGroups[0].Title)
	assert.Len(t, retrieved.ModifierGroups[0].MemberIDs, 1)
}

func TestGormProductRepository_SaveDoesNotWriteAssociations(t *testing.T) {
	db := setupTestDB(t)
	productRepo := NewGormProductRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	product, err := catalog.NewProduct(shopID, "Fries", decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	// A category attached in memory but never persisted must not be created
	// as a side effect of saving the product
	phantom, err := catalog.NewCategory(shopID, "Phantom")
	require.NoError(t, err)
	product.Categories = []catalog.Category{*phantom}

	require.NoError(t, productRepo.Save(ctx, product))

	var count int64
	require.NoError(t, db.Model(&catalog.Category{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGormSubproductRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSubproductRepository(db)
	ctx := context.Background()
	shopID := uuid.New()

	mayo, err := catalog.NewSubproduct(shopID, "Mayo", decimal.RequireFromString("0.60"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mayo))
	ketchup, err := catalog.NewSubproduct(shopID, "Ketchup", decimal.RequireFromString("0.50"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ketchup))

	found, err := repo.FindByIDs(ctx, shopID, []uuid.UUID{mayo.ID, ketchup.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, shopID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
