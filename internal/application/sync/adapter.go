package sync

import (
	"context"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// entityView is the reconciler's uniform view of one local catalog entity
type entityView struct {
	ID       uuid.UUID
	Name     string
	ModTime  int64
	RemoteID *int64
}

// kindAdapter adapts one catalog entity kind to the generic reconciliation
// algorithm. Load must be called before any other method. Adapters are built
// fresh per run and are not safe for concurrent use.
type kindAdapter interface {
	// Kind identifies the entity kind this adapter reconciles
	Kind() possync.EntityKind

	// Load snapshots all local entities of this kind for the shop
	Load(ctx context.Context, shopID uuid.UUID) ([]entityView, error)

	// PushFields returns the writable remote fields for a local entity, or a
	// precondition error when the entity cannot be pushed yet
	PushFields(id uuid.UUID) (possync.RemoteFields, error)

	// Link records the remote counterpart id on the local entity
	Link(ctx context.Context, id uuid.UUID, remoteID int64) error

	// Overwrite replaces local fields with the POS copy
	Overwrite(ctx context.Context, id uuid.UUID, remote possync.RemoteEntity) error

	// CreateLocal creates a local entity from an unmatched POS entity
	CreateLocal(ctx context.Context, shopID uuid.UUID, remote possync.RemoteEntity) error

	// AfterPush runs kind-specific follow-up work for a linked entity, such
	// as projecting a product's modifier groups onto the POS
	AfterPush(ctx context.Context, client possync.Client, id uuid.UUID, remoteID int64, warn func(string)) error
}
