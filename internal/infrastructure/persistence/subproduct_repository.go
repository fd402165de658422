package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/shared"
)

// GormSubproductRepository implements SubproductRepository using GORM
type GormSubproductRepository struct {
	db *gorm.DB
}

// NewGormSubproductRepository creates a new GormSubproductRepository
func NewGormSubproductRepository(db *gorm.DB) *GormSubproductRepository {
	return &GormSubproductRepository{db: db}
}

// FindByID finds a subproduct by ID within a shop
func (r *GormSubproductRepository) FindByID(ctx context.Context, shopID, id uuid.UUID) (*catalog.Subproduct, error) {
	var subproduct catalog.Subproduct
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id = ?", shopID, id).
		First(&subproduct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subproduct, nil
}

// FindByIDs finds multiple subproducts by their IDs within a shop
func (r *GormSubproductRepository) FindByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]catalog.Subproduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subproducts []catalog.Subproduct
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id IN ?", shopID, ids).
		Find(&subproducts).Error; err != nil {
		return nil, err
	}
	return subproducts, nil
}

// FindAllForShop finds all subproducts for a shop
func (r *GormSubproductRepository) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Subproduct, error) {
	var subproducts []catalog.Subproduct
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&subproducts).Error; err != nil {
		return nil, err
	}
	return subproducts, nil
}

// Save creates or updates a subproduct
func (r *GormSubproductRepository) Save(ctx context.Context, subproduct *catalog.Subproduct) error {
	return r.db.WithContext(ctx).Save(subproduct).Error
}

// Ensure GormSubproductRepository implements SubproductRepository
var _ catalog.SubproductRepository = (*GormSubproductRepository)(nil)
