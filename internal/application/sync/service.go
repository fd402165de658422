package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/ordering"
	"github.com/frituurapp/backend/internal/domain/possync"
	"github.com/frituurapp/backend/internal/domain/shared"
)

// ClientFactory builds a POS client for a shop's connection settings
type ClientFactory func(conn *possync.Connection) possync.Client

// ServiceParams bundles the dependencies of the sync service
type ServiceParams struct {
	Connections possync.ConnectionRepository
	Runs        possync.SyncRunRepository
	Categories  catalog.CategoryRepository
	Products    catalog.ProductRepository
	Subproducts catalog.SubproductRepository
	Orders      ordering.OrderRepository
	Lock        possync.SyncLock
	LockTTL     time.Duration
	Clients     ClientFactory
	Logger      *zap.Logger
}

// Service orchestrates catalog syncs and order pushes against the POS.
// Catalog syncs for the same shop are serialized behind a per-shop lock;
// two concurrent runs would race each other on remote id linking.
type Service struct {
	connections possync.ConnectionRepository
	runs        possync.SyncRunRepository
	categories  catalog.CategoryRepository
	products    catalog.ProductRepository
	subproducts catalog.SubproductRepository
	lock        possync.SyncLock
	lockTTL     time.Duration
	clients     ClientFactory
	reconciler  *Reconciler
	projector   *Projector
	pusher      *OrderPusher
	logger      *zap.Logger
}

// NewService creates a new sync service
func NewService(p ServiceParams) *Service {
	projector := NewProjector(p.Subproducts, p.Logger)
	return &Service{
		connections: p.Connections,
		runs:        p.Runs,
		categories:  p.Categories,
		products:    p.Products,
		subproducts: p.Subproducts,
		lock:        p.Lock,
		lockTTL:     p.LockTTL,
		clients:     p.Clients,
		reconciler:  NewReconciler(p.Logger),
		projector:   projector,
		pusher:      NewOrderPusher(p.Orders, p.Products, p.Subproducts, NewShippingProductCache(), p.Logger),
		logger:      p.Logger,
	}
}

// SyncCatalog reconciles the shop's catalog with the POS in the connection's
// configured direction. Categories go first so products can satisfy their
// linked-category precondition, then products, then subproducts.
func (s *Service) SyncCatalog(ctx context.Context, shopID uuid.UUID) (*possync.RunSummary, error) {
	return s.SyncCatalogAs(ctx, shopID, "")
}

// SyncCatalogAs reconciles the shop's catalog like SyncCatalog, with a
// non-empty override taking precedence over the connection's configured
// direction for this run only.
func (s *Service) SyncCatalogAs(ctx context.Context, shopID uuid.UUID, override possync.Direction) (*possync.RunSummary, error) {
	conn, err := s.connections.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !conn.Enabled {
		return nil, possync.ErrConnectionDisabled
	}

	direction := conn.Direction
	if override != "" {
		if !override.IsValid() {
			return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown sync direction: "+override.String())
		}
		direction = override
	}

	summary := &possync.RunSummary{
		ShopID:    shopID,
		Direction: direction,
		StartedAt: time.Now(),
	}
	if direction == possync.DirectionOff {
		summary.FinishedAt = summary.StartedAt
		return summary, nil
	}

	acquired, err := s.lock.TryLock(ctx, shopID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrSyncInFlight
	}
	defer func() {
		if err := s.lock.Unlock(context.WithoutCancel(ctx), shopID); err != nil {
			s.logger.Warn("Failed to release sync lock",
				zap.String("shop_id", shopID.String()),
				zap.Error(err),
			)
		}
	}()

	client := s.clients(conn)
	runErr := s.reconcileAll(ctx, shopID, direction, client, summary)
	summary.FinishedAt = time.Now()

	s.recordRun(ctx, summary, runErr)

	if runErr != nil {
		return summary, runErr
	}
	return summary, nil
}

// reconcileAll runs the three kinds in dependency order
func (s *Service) reconcileAll(ctx context.Context, shopID uuid.UUID, direction possync.Direction, client possync.Client, summary *possync.RunSummary) error {
	adapters := []kindAdapter{
		newCategoryAdapter(s.categories),
		newProductAdapter(s.products, s.projector),
		newSubproductAdapter(s.subproducts),
	}

	for _, adapter := range adapters {
		kindSummary, err := s.reconciler.Reconcile(ctx, shopID, direction, client, adapter)
		summary.Kinds = append(summary.Kinds, kindSummary)
		if err != nil {
			return err
		}
	}
	return nil
}

// recordRun persists the run for the history endpoint. A failure to record
// never fails the sync itself.
func (s *Service) recordRun(ctx context.Context, summary *possync.RunSummary, runErr error) {
	run := possync.NewSyncRunFromSummary(summary, runErr)
	if err := s.runs.Save(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Warn("Failed to record sync run",
			zap.String("shop_id", summary.ShopID.String()),
			zap.Error(err),
		)
	}
}

// PushOrder pushes one order to the POS. Independent of the catalog sync
// direction: orders flow to the register even for pull-only shops.
func (s *Service) PushOrder(ctx context.Context, shopID, orderID uuid.UUID) (*possync.OrderPushResult, error) {
	conn, err := s.connections.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !conn.Enabled {
		return nil, possync.ErrConnectionDisabled
	}

	return s.pusher.Push(ctx, s.clients(conn), shopID, orderID)
}

// History returns the shop's most recent sync runs, newest first
func (s *Service) History(ctx context.Context, shopID uuid.UUID, limit int) ([]possync.SyncRun, error) {
	return s.runs.FindRecentForShop(ctx, shopID, limit)
}
