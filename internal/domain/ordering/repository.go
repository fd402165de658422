package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID within a shop, with lines loaded
	FindByID(ctx context.Context, shopID, id uuid.UUID) (*Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error
}
