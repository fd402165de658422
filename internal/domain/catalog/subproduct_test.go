package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubproduct(t *testing.T) {
	shopID := uuid.New()

	t.Run("creates subproduct with valid inputs", func(t *testing.T) {
		subproduct, err := NewSubproduct(shopID, "Mayo", decimal.NewFromFloat(0.50))
		require.NoError(t, err)

		assert.Equal(t, shopID, subproduct.ShopID)
		assert.Equal(t, "Mayo", subproduct.Name)
		assert.NotZero(t, subproduct.ModTime)
		assert.False(t, subproduct.IsLinked())
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewSubproduct(shopID, "Mayo", decimal.NewFromFloat(-0.50))
		require.Error(t, err)
	})
}

func TestSubproductUpdate(t *testing.T) {
	subproduct, err := NewSubproduct(uuid.New(), "Mayo", decimal.NewFromFloat(0.50))
	require.NoError(t, err)

	before := subproduct.ModTime
	require.NoError(t, subproduct.Update("Truffle Mayo", decimal.NewFromFloat(0.80), decimal.NewFromInt(9)))

	assert.Equal(t, "Truffle Mayo", subproduct.Name)
	assert.True(t, subproduct.Price.Equal(decimal.NewFromFloat(0.80)))
	assert.Greater(t, subproduct.ModTime, before)
}

func TestSubproductApplyRemote(t *testing.T) {
	subproduct, err := NewSubproduct(uuid.New(), "Mayo", decimal.NewFromFloat(0.50))
	require.NoError(t, err)

	subproduct.ApplyRemote("MAYONAISE", decimal.NewFromFloat(0.60), decimal.NewFromInt(9), 77777)

	assert.Equal(t, "MAYONAISE", subproduct.Name)
	assert.Equal(t, int64(77777), subproduct.ModTime)
}
