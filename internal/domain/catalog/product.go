package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// Product represents a sellable item in the local catalog
type Product struct {
	shared.ShopAggregateRoot
	Name          string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	ModTime       int64           `gorm:"not null;default:0"`
	// RemoteID is the id of the counterpart product in the POS system
	RemoteID *int64 `gorm:"index"`

	// Categories are the categories this product is listed under
	Categories []Category `gorm:"many2many:product_categories"`
	// ModifierGroups are the popups attached to this product, one per POS slot
	ModifierGroups []ModifierGroupAssignment `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(shopID uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		ShopAggregateRoot: shared.NewShopAggregateRoot(shopID),
		Name:              name,
		Price:             price,
		ModTime:           time.Now().Unix(),
	}, nil
}

// Update changes the product's basic fields and bumps the clock
func (p *Product) Update(name, description string, price, taxRate decimal.Decimal) error {
	if err := validateName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.TaxRate = taxRate
	p.Touch()
	return nil
}

// Touch bumps the modification clock
func (p *Product) Touch() {
	p.ModTime = nextModTime(p.ModTime)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// LinkRemote records the POS counterpart id without touching the clock
func (p *Product) LinkRemote(remoteID int64) {
	p.RemoteID = &remoteID
	p.UpdatedAt = time.Now()
}

// IsLinked returns true if the product has a POS counterpart
func (p *Product) IsLinked() bool {
	return p.RemoteID != nil
}

// ApplyRemote overwrites local fields from the POS copy
func (p *Product) ApplyRemote(name string, price, taxRate decimal.Decimal, modTime int64) {
	p.Name = name
	p.Price = price
	p.TaxRate = taxRate
	p.ModTime = modTime
	p.UpdatedAt = time.Now()
}

// LinkedCategoryRemoteID returns the POS id of the first linked category.
// The POS requires a product to live in a remote category, so a product with
// no linked category cannot be pushed yet.
func (p *Product) LinkedCategoryRemoteID() (int64, bool) {
	for _, c := range p.Categories {
		if c.RemoteID != nil {
			return *c.RemoteID, true
		}
	}
	return 0, false
}

// SortedModifierGroups returns the modifier group assignments in slot order
func (p *Product) SortedModifierGroups() []ModifierGroupAssignment {
	groups := make([]ModifierGroupAssignment, len(p.ModifierGroups))
	copy(groups, p.ModifierGroups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Slot < groups[j].Slot
	})
	return groups
}
