package possync

import (
	"context"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Remote value objects
// ---------------------------------------------------------------------------

// RemoteEntity is the POS's copy of a catalog entity
type RemoteEntity struct {
	// ID is the POS-assigned numeric id
	ID int64
	// Name is the entity name on the POS
	Name string
	// Price is the selling price (zero for categories)
	Price decimal.Decimal
	// TaxRate is the tax percentage (zero for categories)
	TaxRate decimal.Decimal
	// ModTime is the POS-side modification clock
	ModTime int64
	// CategoryID is the POS category the entity lives in (products only)
	CategoryID int64
}

// RemoteFields carries the writable fields of a catalog entity for
// insert/update calls
type RemoteFields struct {
	Name          string
	Price         decimal.Decimal
	TaxRate       decimal.Decimal
	ModTime       int64
	CategoryID    int64
	StockQuantity int
}

// RemoteModifierGroup is the full definition of one POS modifier slot.
// Submitting it replaces whatever the slot held before.
type RemoteModifierGroup struct {
	// Slot is the 1-based modifier slot index on the POS product
	Slot               int
	Title              string
	MultiSelect        bool
	MinSelect          int
	MaxSelect          int
	RequiredOnWeb      bool
	RequiredOnRegister bool
	// DefaultMemberID is the pre-checked member's POS id, zero for none
	DefaultMemberID int64
	// MemberIDs are the POS ids of the selectable modifier items
	MemberIDs []int64
}

// RemoteCustomer is the POS's customer record, keyed by email
type RemoteCustomer struct {
	ID    int64
	Email string
	Name  string
}

// CustomerFields carries the writable fields for customer creation
type CustomerFields struct {
	Email   string
	Name    string
	Phone   string
	Address string
	Zip     string
	City    string
}

// Delivery modes as the POS encodes them
const (
	DeliveryModeTakeaway = 0
	DeliveryModeDelivery = 1
	DeliveryModeDineIn   = 2
)

// OrderLineSubmission is one unit-quantity line of a POS order. The POS has
// no quantity field, so a local line of quantity N is expanded into N of
// these before submission.
type OrderLineSubmission struct {
	// ProductID is the POS id of the ordered product
	ProductID int64
	// Price is the unit price for this line
	Price decimal.Decimal
	// ModifierIDs fills the line's numbered modifier slots, at most one id
	// per slot
	ModifierIDs []int64
}

// OrderSubmission is the flat order shape the POS accepts in a single
// order-insert call
type OrderSubmission struct {
	// CustomerID is the POS id of the ordering customer
	CustomerID int64
	// DeliveryMode is one of the DeliveryMode constants
	DeliveryMode int
	// Planned is true when the order is scheduled for a later moment
	Planned bool
	// PlannedFor is the combined POS datetime string, empty when immediate
	PlannedFor string
	// Discount is the order discount formatted as a 2-decimal string
	Discount string
	// Remark is a free-text note shown on the POS ticket
	Remark string
	// OnlinePaid is true when every payment used a non-cash provider
	OnlinePaid bool
	// Lines are the expanded unit-quantity lines
	Lines []OrderLineSubmission
}

// ---------------------------------------------------------------------------
// Client port
// ---------------------------------------------------------------------------

// Client is the port to the POS HTTP API. Implementations are a pure network
// boundary: no caching, no business logic, errors classified per the
// taxonomy in errors.go.
type Client interface {
	// ListEntities fetches the POS's full entity set for a kind
	ListEntities(ctx context.Context, kind EntityKind) ([]RemoteEntity, error)

	// CreateEntity inserts an entity and returns the POS-assigned id
	CreateEntity(ctx context.Context, kind EntityKind, fields RemoteFields) (int64, error)

	// UpdateEntity overwrites an entity's fields on the POS
	UpdateEntity(ctx context.Context, kind EntityKind, remoteID int64, fields RemoteFields) error

	// UpdateModifierGroup replaces one modifier slot of a POS product
	UpdateModifierGroup(ctx context.Context, productRemoteID int64, group RemoteModifierGroup) error

	// FindCustomerByEmail looks up a customer; returns ErrCustomerNotFound
	// when the POS has no record for the email
	FindCustomerByEmail(ctx context.Context, email string) (*RemoteCustomer, error)

	// CreateCustomer inserts a customer and returns the POS-assigned id
	CreateCustomer(ctx context.Context, fields CustomerFields) (int64, error)

	// CreateOrder submits a complete order and returns the POS order id
	CreateOrder(ctx context.Context, submission OrderSubmission) (int64, error)
}
