package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	shopID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(shopID, "Frikandel", decimal.NewFromFloat(2.50))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, shopID, product.ShopID)
		assert.Equal(t, "Frikandel", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(2.50)))
		assert.NotZero(t, product.ModTime)
		assert.False(t, product.IsLinked())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(shopID, "", decimal.NewFromFloat(2.50))
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(shopID, "Frikandel", decimal.NewFromFloat(-0.01))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProductUpdate(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Frikandel", decimal.NewFromFloat(2.50))
	require.NoError(t, err)

	t.Run("changes fields and bumps the clock", func(t *testing.T) {
		before := product.ModTime
		err := product.Update("Frikandel Speciaal", "with onions", decimal.NewFromFloat(3.25), decimal.NewFromInt(9))
		require.NoError(t, err)

		assert.Equal(t, "Frikandel Speciaal", product.Name)
		assert.Equal(t, "with onions", product.Description)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(3.25)))
		assert.True(t, product.TaxRate.Equal(decimal.NewFromInt(9)))
		assert.Greater(t, product.ModTime, before)
	})

	t.Run("rejects negative price without touching the clock", func(t *testing.T) {
		before := product.ModTime
		err := product.Update("Frikandel", "", decimal.NewFromFloat(-1), decimal.Zero)
		require.Error(t, err)
		assert.Equal(t, before, product.ModTime)
	})
}

func TestProductApplyRemote(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Frikandel", decimal.NewFromFloat(2.50))
	require.NoError(t, err)

	product.ApplyRemote("FRIKANDEL XL", decimal.NewFromFloat(3.00), decimal.NewFromInt(9), 99999)

	assert.Equal(t, "FRIKANDEL XL", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(3.00)))
	assert.Equal(t, int64(99999), product.ModTime)
}

func TestProductLinkedCategoryRemoteID(t *testing.T) {
	shopID := uuid.New()

	newCat := func(name string, remoteID *int64) Category {
		c, err := NewCategory(shopID, name)
		require.NoError(t, err)
		c.RemoteID = remoteID
		return *c
	}
	rid := func(v int64) *int64 { return &v }

	t.Run("no categories", func(t *testing.T) {
		product, err := NewProduct(shopID, "Frikandel", decimal.NewFromFloat(2.50))
		require.NoError(t, err)

		_, ok := product.LinkedCategoryRemoteID()
		assert.False(t, ok)
	})

	t.Run("no linked categories", func(t *testing.T) {
		product, err := NewProduct(shopID, "Frikandel", decimal.NewFromFloat(2.50))
		require.NoError(t, err)
		product.Categories = []Category{newCat("Snacks", nil)}

		_, ok := product.LinkedCategoryRemoteID()
		assert.False(t, ok)
	})

	t.Run("first linked category wins", func(t *testing.T) {
		product, err := NewProduct(shopID, "Frikandel", decimal.NewFromFloat(2.50))
		require.NoError(t, err)
		product.Categories = []Category{
			newCat("Snacks", nil),
			newCat("Fried", rid(40)),
			newCat("Popular", rid(41)),
		}

		remoteID, ok := product.LinkedCategoryRemoteID()
		require.True(t, ok)
		assert.Equal(t, int64(40), remoteID)
	})
}

func TestProductSortedModifierGroups(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Frikandel", decimal.NewFromFloat(2.50))
	require.NoError(t, err)

	for _, slot := range []int{3, 1, 2} {
		group, err := NewModifierGroupAssignment(product.ID, slot, "Sauces", nil)
		require.NoError(t, err)
		product.ModifierGroups = append(product.ModifierGroups, *group)
	}

	sorted := product.SortedModifierGroups()
	require.Len(t, sorted, 3)
	assert.Equal(t, 1, sorted[0].Slot)
	assert.Equal(t, 2, sorted[1].Slot)
	assert.Equal(t, 3, sorted[2].Slot)
	// the stored order stays untouched
	assert.Equal(t, 3, product.ModifierGroups[0].Slot)
}
