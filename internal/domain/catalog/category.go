package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// Category represents a menu category in the local catalog
type Category struct {
	shared.ShopAggregateRoot
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"not null;default:0"`
	// ModTime is the integer modification clock used for last-writer-wins
	// conflict resolution against the POS copy of this category.
	ModTime int64 `gorm:"not null;default:0"`
	// RemoteID is the id of the counterpart category in the POS system.
	// Nil until the category has been linked or created remotely.
	RemoteID *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(shopID uuid.UUID, name string) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Category{
		ShopAggregateRoot: shared.NewShopAggregateRoot(shopID),
		Name:              name,
		ModTime:           time.Now().Unix(),
	}, nil
}

// Rename changes the category name and bumps the modification clock
func (c *Category) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	c.Name = name
	c.Touch()
	return nil
}

// Touch bumps the modification clock. The clock is strictly increasing even
// when two edits land within the same second.
func (c *Category) Touch() {
	c.ModTime = nextModTime(c.ModTime)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// LinkRemote records the POS counterpart id. Linking is sync bookkeeping,
// not a content edit, so the modification clock stays untouched.
func (c *Category) LinkRemote(remoteID int64) {
	c.RemoteID = &remoteID
	c.UpdatedAt = time.Now()
}

// IsLinked returns true if the category has a POS counterpart
func (c *Category) IsLinked() bool {
	return c.RemoteID != nil
}

// ApplyRemote overwrites local fields from the POS copy. The remote clock is
// adopted as-is so a re-run sees the two sides as equal.
func (c *Category) ApplyRemote(name string, modTime int64) {
	c.Name = name
	c.ModTime = modTime
	c.UpdatedAt = time.Now()
}

// nextModTime returns a clock value strictly greater than prev
func nextModTime(prev int64) int64 {
	now := time.Now().Unix()
	if now <= prev {
		return prev + 1
	}
	return now
}

// validateName validates an entity name
func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
