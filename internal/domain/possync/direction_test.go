package possync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		direction Direction
		valid     bool
		push      bool
		pull      bool
	}{
		{DirectionOff, true, false, false},
		{DirectionPush, true, true, false},
		{DirectionPull, true, false, true},
		{DirectionBoth, true, true, true},
		{Direction("sideways"), false, false, false},
		{Direction(""), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.direction.IsValid())
			assert.Equal(t, tt.push, tt.direction.ShouldPush())
			assert.Equal(t, tt.pull, tt.direction.ShouldPull())
		})
	}
}

func TestEntityKindIsValid(t *testing.T) {
	assert.True(t, KindCategory.IsValid())
	assert.True(t, KindProduct.IsValid())
	assert.True(t, KindSubproduct.IsValid())
	assert.False(t, EntityKind("combo").IsValid())
}
