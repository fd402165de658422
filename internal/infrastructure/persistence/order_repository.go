package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frituurapp/backend/internal/domain/ordering"
	"github.com/frituurapp/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID within a shop, with lines loaded
func (r *GormOrderRepository) FindByID(ctx context.Context, shopID, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("shop_id = ? AND id = ?", shopID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
