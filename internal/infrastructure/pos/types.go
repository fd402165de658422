package pos

import (
	"github.com/shopspring/decimal"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// The POS wire format. All prices travel as 2-decimal strings; every response
// carries an error envelope that is null on success.

// apiError is the embedded application error in a POS response
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// listResponse is the envelope of a select call
type listResponse struct {
	Error *apiError       `json:"error"`
	Items []entityPayload `json:"items"`
}

// insertResponse is the envelope of an insert call
type insertResponse struct {
	Error *apiError `json:"error"`
	ID    int64     `json:"id"`
}

// updateResponse is the envelope of an update call
type updateResponse struct {
	Error *apiError `json:"error"`
}

// customerResponse is the envelope of a customer select call. Customer is
// null when the POS has no record for the email.
type customerResponse struct {
	Error    *apiError        `json:"error"`
	Customer *customerPayload `json:"customer"`
}

// entityPayload is one catalog entity as the POS serializes it
type entityPayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	TaxRate    string `json:"tax_rate"`
	ModTime    int64  `json:"modtime"`
	CategoryID int64  `json:"category_id,omitempty"`
}

// toDomain converts a wire entity to the domain value object
func (p *entityPayload) toDomain() possync.RemoteEntity {
	return possync.RemoteEntity{
		ID:         p.ID,
		Name:       p.Name,
		Price:      parseDecimal(p.Price),
		TaxRate:    parseDecimal(p.TaxRate),
		ModTime:    p.ModTime,
		CategoryID: p.CategoryID,
	}
}

// entityFieldsPayload is the writable entity body for insert/update calls
type entityFieldsPayload struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	TaxRate       string `json:"tax_rate"`
	ModTime       int64  `json:"modtime"`
	CategoryID    int64  `json:"category_id,omitempty"`
	StockQuantity int    `json:"stock_quantity,omitempty"`
}

// entityFieldsFromDomain converts domain fields to the wire body
func entityFieldsFromDomain(f possync.RemoteFields) entityFieldsPayload {
	return entityFieldsPayload{
		Name:          f.Name,
		Price:         f.Price.StringFixed(2),
		TaxRate:       f.TaxRate.StringFixed(2),
		ModTime:       f.ModTime,
		CategoryID:    f.CategoryID,
		StockQuantity: f.StockQuantity,
	}
}

// modifierGroupPayload is the full-replacement body for one modifier slot
type modifierGroupPayload struct {
	Title              string  `json:"title"`
	MultiSelect        bool    `json:"multiselect"`
	MinSelect          int     `json:"min_select"`
	MaxSelect          int     `json:"max_select"`
	RequiredOnWeb      bool    `json:"required_web"`
	RequiredOnRegister bool    `json:"required_register"`
	DefaultMemberID    int64   `json:"default_member_id,omitempty"`
	MemberIDs          []int64 `json:"member_ids"`
}

// customerPayload is one customer as the POS serializes it
type customerPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// customerFieldsPayload is the writable customer body
type customerFieldsPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Zip     string `json:"zip,omitempty"`
	City    string `json:"city,omitempty"`
}

// orderLinePayload is one unit-quantity order line on the wire
type orderLinePayload struct {
	ProductID   int64   `json:"product_id"`
	Price       string  `json:"price"`
	ModifierIDs []int64 `json:"modifier_ids,omitempty"`
}

// orderPayload is the order-insert body
type orderPayload struct {
	CustomerID   int64              `json:"customer_id"`
	DeliveryMode int                `json:"delivery_mode"`
	Planned      bool               `json:"planned"`
	PlannedFor   string             `json:"planned_for,omitempty"`
	Discount     string             `json:"discount"`
	Remark       string             `json:"remark,omitempty"`
	OnlinePaid   bool               `json:"online_paid"`
	Lines        []orderLinePayload `json:"lines"`
}

// parseDecimal parses a wire price. The POS feed occasionally carries empty
// or malformed price strings; those read as zero rather than failing the run.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
