package catalog

import (
	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// MaxModifierSlots is the number of numbered modifier slots the POS attaches
// to a product. Assignments beyond this limit cannot be represented remotely.
const MaxModifierSlots = 10

// ModifierGroupAssignment attaches a modifier group ("popup") to a product at
// a fixed POS slot. Assignments are created and edited by catalog management;
// the sync engine only reads them and projects them onto the POS product.
type ModifierGroupAssignment struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Slot is the 1-based modifier slot index on the POS product
	Slot               int    `gorm:"not null"`
	Title              string `gorm:"type:varchar(100);not null"`
	MultiSelect        bool   `gorm:"not null;default:false"`
	MinSelect          int    `gorm:"not null;default:0"`
	MaxSelect          int    `gorm:"not null;default:1"`
	RequiredOnWeb      bool   `gorm:"not null;default:false"`
	RequiredOnRegister bool   `gorm:"not null;default:false"`
	// DefaultSubproductID is the member pre-checked in the POS popup, if any
	DefaultSubproductID *uuid.UUID `gorm:"type:uuid"`
	// MemberIDs lists the subproducts selectable in this group, in display order
	MemberIDs UUIDList `gorm:"type:text;serializer:json"`
}

// TableName returns the table name for GORM
func (ModifierGroupAssignment) TableName() string {
	return "modifier_group_assignments"
}

// NewModifierGroupAssignment creates a new assignment
func NewModifierGroupAssignment(productID uuid.UUID, slot int, title string, memberIDs []uuid.UUID) (*ModifierGroupAssignment, error) {
	if slot < 1 {
		return nil, shared.NewDomainError("INVALID_SLOT", "Modifier slot must be 1 or greater")
	}
	if err := validateName(title); err != nil {
		return nil, err
	}

	return &ModifierGroupAssignment{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Slot:       slot,
		Title:      title,
		MaxSelect:  1,
		MemberIDs:  memberIDs,
	}, nil
}

// HasMember returns true if the subproduct is a member of this group
func (a *ModifierGroupAssignment) HasMember(subproductID uuid.UUID) bool {
	for _, id := range a.MemberIDs {
		if id == subproductID {
			return true
		}
	}
	return false
}

// UUIDList is a JSON-serialized list of entity ids
type UUIDList []uuid.UUID
