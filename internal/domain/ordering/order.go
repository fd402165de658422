package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// FulfillmentMethod is how the customer receives the order
type FulfillmentMethod string

const (
	FulfillmentDineIn   FulfillmentMethod = "dine_in"
	FulfillmentTakeaway FulfillmentMethod = "takeaway"
	FulfillmentDelivery FulfillmentMethod = "delivery"
)

// IsValid returns true if the fulfillment method is a known value
func (m FulfillmentMethod) IsValid() bool {
	switch m {
	case FulfillmentDineIn, FulfillmentTakeaway, FulfillmentDelivery:
		return true
	default:
		return false
	}
}

// Order represents a completed checkout order waiting to be pushed to the POS.
// Orders are created by the checkout flow; the sync engine only reads them and
// records the remote order id after a successful push.
type Order struct {
	shared.ShopAggregateRoot
	Number        string          `gorm:"type:varchar(50);not null"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CustomerEmail      string `gorm:"type:varchar(255)"`
	CustomerName       string `gorm:"type:varchar(100)"`
	CustomerPhone      string `gorm:"type:varchar(50)"`
	DeliveryAddress    string `gorm:"type:varchar(255)"`
	DeliveryPostalCode string `gorm:"type:varchar(20)"`
	DeliveryCity       string `gorm:"type:varchar(100)"`

	FulfillmentMethod FulfillmentMethod `gorm:"type:varchar(20);not null;default:'takeaway'"`
	// FulfillmentDate (YYYY-MM-DD) and FulfillmentTime (HH:MM) are set when
	// the customer scheduled the order; both empty means as-soon-as-possible.
	FulfillmentDate string `gorm:"type:varchar(10)"`
	FulfillmentTime string `gorm:"type:varchar(5)"`

	// Payments records the payment provider(s) that settled this order
	Payments PaymentList `gorm:"type:text;serializer:json"`

	// RemoteOrderID is set once the order has been pushed to the POS.
	// A non-nil value means the order must never be pushed again.
	RemoteOrderID *int64 `gorm:"index"`

	Lines []OrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// IsPushed returns true if the order has already been pushed to the POS
func (o *Order) IsPushed() bool {
	return o.RemoteOrderID != nil
}

// MarkPushed records the remote order id after a successful push
func (o *Order) MarkPushed(remoteOrderID int64) {
	o.RemoteOrderID = &remoteOrderID
	o.UpdatedAt = time.Now()
}

// IsScheduled returns true when the customer picked both a date and a time
func (o *Order) IsScheduled() bool {
	return o.FulfillmentDate != "" && o.FulfillmentTime != ""
}

// PaidOnline returns true only if every recorded payment went through a
// non-cash provider. An order with no payments counts as not paid online.
func (o *Order) PaidOnline() bool {
	if len(o.Payments) == 0 {
		return false
	}
	for _, p := range o.Payments {
		if strings.Contains(strings.ToLower(p.Provider), "cash") {
			return false
		}
	}
	return true
}

// DeliveryRemark builds a free-text summary of the delivery address fields,
// trimmed of trailing separators
func (o *Order) DeliveryRemark() string {
	parts := make([]string, 0, 3)
	for _, f := range []string{o.DeliveryAddress, o.DeliveryPostalCode, o.DeliveryCity} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}

// Payment records one settled payment on an order
type Payment struct {
	Provider string          `json:"provider"`
	Amount   decimal.Decimal `json:"amount"`
}

// PaymentList is a JSON-serialized list of payments
type PaymentList []Payment

// OrderLine is one line item on an order
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// Selections are the subproducts the customer picked for this line
	Selections SelectionList `gorm:"type:text;serializer:json"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// SubproductSelection is one picked modifier item with its quantity
type SubproductSelection struct {
	SubproductID uuid.UUID `json:"subproduct_id"`
	Quantity     int       `json:"quantity"`
}

// SelectionList is a JSON-serialized list of subproduct selections
type SelectionList []SubproductSelection
