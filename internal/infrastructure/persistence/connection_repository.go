package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// GormConnectionRepository implements ConnectionRepository using GORM
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a new GormConnectionRepository
func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	return &GormConnectionRepository{db: db}
}

// FindByShop finds the connection for a shop
func (r *GormConnectionRepository) FindByShop(ctx context.Context, shopID uuid.UUID) (*possync.Connection, error) {
	var connection possync.Connection
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		First(&connection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, possync.ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

// FindAllEnabled finds every enabled connection across shops
func (r *GormConnectionRepository) FindAllEnabled(ctx context.Context) ([]possync.Connection, error) {
	var connections []possync.Connection
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&connections).Error; err != nil {
		return nil, err
	}
	return connections, nil
}

// Save creates or updates a connection
func (r *GormConnectionRepository) Save(ctx context.Context, connection *possync.Connection) error {
	return r.db.WithContext(ctx).Save(connection).Error
}

// Ensure GormConnectionRepository implements ConnectionRepository
var _ possync.ConnectionRepository = (*GormConnectionRepository)(nil)
