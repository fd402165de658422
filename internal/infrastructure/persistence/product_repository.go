package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID within a shop, with categories and modifier
// groups loaded
func (r *GormProductRepository) FindByID(ctx context.Context, shopID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("ModifierGroups").
		Where("shop_id = ? AND id = ?", shopID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllForShop finds all products for a shop, with categories and modifier
// groups loaded
func (r *GormProductRepository) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("ModifierGroups").
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product without touching its associations.
// Category memberships and modifier groups are managed elsewhere.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(product).Error
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
