package possync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// Connection holds a shop's POS connection settings. One connection per shop;
// the credential pair is sent on every request.
type Connection struct {
	shared.ShopAggregateRoot
	BaseURL      string `gorm:"type:varchar(255);not null"`
	LicenseName  string `gorm:"type:varchar(100);not null"`
	LicenseToken string `gorm:"type:varchar(255);not null"`
	// Direction is the configured catalog sync direction for this shop
	Direction Direction `gorm:"type:varchar(10);not null;default:'off'"`
	Enabled   bool      `gorm:"not null;default:true"`
	// TimeoutSeconds bounds each POS request
	TimeoutSeconds int `gorm:"not null;default:30"`
}

// TableName returns the table name for GORM
func (Connection) TableName() string {
	return "pos_connections"
}

// NewConnection creates a new POS connection for a shop
func NewConnection(shopID uuid.UUID, baseURL, licenseName, licenseToken string) (*Connection, error) {
	c := &Connection{
		ShopAggregateRoot: shared.NewShopAggregateRoot(shopID),
		BaseURL:           baseURL,
		LicenseName:       licenseName,
		LicenseToken:      licenseToken,
		Direction:         DirectionOff,
		Enabled:           true,
		TimeoutSeconds:    30,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the connection settings
func (c *Connection) Validate() error {
	if c.BaseURL == "" {
		return shared.NewDomainError("INVALID_CONNECTION", "POS base URL is required")
	}
	if c.LicenseName == "" || c.LicenseToken == "" {
		return shared.NewDomainError("INVALID_CONNECTION", "POS license name and token are required")
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Timeout returns the per-request timeout
func (c *Connection) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConnectionRepository defines the interface for connection persistence
type ConnectionRepository interface {
	// FindByShop finds the connection for a shop; returns
	// ErrConnectionNotFound when none is configured
	FindByShop(ctx context.Context, shopID uuid.UUID) (*Connection, error)

	// FindAllEnabled finds every enabled connection across shops
	FindAllEnabled(ctx context.Context) ([]Connection, error)

	// Save creates or updates a connection
	Save(ctx context.Context, connection *Connection) error
}

// SyncLock serializes catalog syncs per shop. Two concurrent runs for the
// same shop would race the name-linking heuristic onto duplicate links.
type SyncLock interface {
	// TryLock attempts to acquire the shop's sync lock without blocking.
	// Returns false when another run holds it.
	TryLock(ctx context.Context, shopID uuid.UUID, ttl time.Duration) (bool, error)

	// Unlock releases the shop's sync lock
	Unlock(ctx context.Context, shopID uuid.UUID) error
}
