package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// GormSyncRunRepository implements SyncRunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Save records a finished run
func (r *GormSyncRunRepository) Save(ctx context.Context, run *possync.SyncRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindRecentForShop returns the most recent runs for a shop, newest first
func (r *GormSyncRunRepository) FindRecentForShop(ctx context.Context, shopID uuid.UUID, limit int) ([]possync.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []possync.SyncRun
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Ensure GormSyncRunRepository implements SyncRunRepository
var _ possync.SyncRunRepository = (*GormSyncRunRepository)(nil)
