package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// Subproduct represents a modifier item (sauce, topping, extra) that can be
// attached to products through modifier groups
type Subproduct struct {
	shared.ShopAggregateRoot
	Name    string          `gorm:"type:varchar(100);not null"`
	Price   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ModTime int64           `gorm:"not null;default:0"`
	// RemoteID is the id of the counterpart modifier item in the POS system
	RemoteID *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (Subproduct) TableName() string {
	return "subproducts"
}

// NewSubproduct creates a new subproduct
func NewSubproduct(shopID uuid.UUID, name string, price decimal.Decimal) (*Subproduct, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Subproduct{
		ShopAggregateRoot: shared.NewShopAggregateRoot(shopID),
		Name:              name,
		Price:             price,
		ModTime:           time.Now().Unix(),
	}, nil
}

// Update changes the subproduct's name and pricing and bumps the clock
func (s *Subproduct) Update(name string, price, taxRate decimal.Decimal) error {
	if err := validateName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	s.Name = name
	s.Price = price
	s.TaxRate = taxRate
	s.Touch()
	return nil
}

// Touch bumps the modification clock
func (s *Subproduct) Touch() {
	s.ModTime = nextModTime(s.ModTime)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// LinkRemote records the POS counterpart id without touching the clock
func (s *Subproduct) LinkRemote(remoteID int64) {
	s.RemoteID = &remoteID
	s.UpdatedAt = time.Now()
}

// IsLinked returns true if the subproduct has a POS counterpart
func (s *Subproduct) IsLinked() bool {
	return s.RemoteID != nil
}

// ApplyRemote overwrites local fields from the POS copy
func (s *Subproduct) ApplyRemote(name string, price, taxRate decimal.Decimal, modTime int64) {
	s.Name = name
	s.Price = price
	s.TaxRate = taxRate
	s.ModTime = modTime
	s.UpdatedAt = time.Now()
}
