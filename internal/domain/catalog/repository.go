package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by ID within a shop
	FindByID(ctx context.Context, shopID, id uuid.UUID) (*Category, error)

	// FindAllForShop finds all categories for a shop
	FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID within a shop, with categories and
	// modifier groups loaded
	FindByID(ctx context.Context, shopID, id uuid.UUID) (*Product, error)

	// FindAllForShop finds all products for a shop, with categories and
	// modifier groups loaded
	FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]Product, error)

	// Save creates or updates a product. Associations are not written back;
	// category memberships and modifier groups belong to catalog management.
	Save(ctx context.Context, product *Product) error
}

// SubproductRepository defines the interface for subproduct persistence
type SubproductRepository interface {
	// FindByID finds a subproduct by ID within a shop
	FindByID(ctx context.Context, shopID, id uuid.UUID) (*Subproduct, error)

	// FindByIDs finds multiple subproducts by their IDs within a shop
	FindByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]Subproduct, error)

	// FindAllForShop finds all subproducts for a shop
	FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]Subproduct, error)

	// Save creates or updates a subproduct
	Save(ctx context.Context, subproduct *Subproduct) error
}
