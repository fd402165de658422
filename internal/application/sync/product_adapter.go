package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/possync"
)

// productAdapter reconciles products. Pushing a product requires at least one
// of its categories to be linked; the projector runs for every linked product
// after the push half because modifier state carries no clock of its own.
type productAdapter struct {
	repo      catalog.ProductRepository
	projector *Projector
	loaded    map[uuid.UUID]*catalog.Product
}

func newProductAdapter(repo catalog.ProductRepository, projector *Projector) *productAdapter {
	return &productAdapter{
		repo:      repo,
		projector: projector,
		loaded:    make(map[uuid.UUID]*catalog.Product),
	}
}

func (a *productAdapter) Kind() possync.EntityKind {
	return possync.KindProduct
}

func (a *productAdapter) Load(ctx context.Context, shopID uuid.UUID) ([]entityView, error) {
	products, err := a.repo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	views := make([]entityView, 0, len(products))
	for i := range products {
		p := &products[i]
		a.loaded[p.ID] = p
		views = append(views, entityView{
			ID:       p.ID,
			Name:     p.Name,
			ModTime:  p.ModTime,
			RemoteID: p.RemoteID,
		})
	}
	return views, nil
}

func (a *productAdapter) PushFields(id uuid.UUID) (possync.RemoteFields, error) {
	p, ok := a.loaded[id]
	if !ok {
		return possync.RemoteFields{}, fmt.Errorf("product %s not loaded", id)
	}

	categoryRemoteID, ok := p.LinkedCategoryRemoteID()
	if !ok {
		return possync.RemoteFields{}, fmt.Errorf("%w: product %q", possync.ErrCategoryNotLinked, p.Name)
	}

	return possync.RemoteFields{
		Name:          p.Name,
		Price:         p.Price,
		TaxRate:       p.TaxRate,
		ModTime:       p.ModTime,
		CategoryID:    categoryRemoteID,
		StockQuantity: p.StockQuantity,
	}, nil
}

func (a *productAdapter) Link(ctx context.Context, id uuid.UUID, remoteID int64) error {
	p, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("product %s not loaded", id)
	}
	p.LinkRemote(remoteID)
	return a.repo.Save(ctx, p)
}

func (a *productAdapter) Overwrite(ctx context.Context, id uuid.UUID, remote possync.RemoteEntity) error {
	p, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("product %s not loaded", id)
	}
	p.ApplyRemote(remote.Name, remote.Price, remote.TaxRate, remote.ModTime)
	return a.repo.Save(ctx, p)
}

// CreateLocal creates a product from an unmatched POS product. The new
// product carries no local category membership; assigning it to a category is
// left to catalog management.
func (a *productAdapter) CreateLocal(ctx context.Context, shopID uuid.UUID, remote possync.RemoteEntity) error {
	p, err := catalog.NewProduct(shopID, remote.Name, remote.Price)
	if err != nil {
		return err
	}
	p.ApplyRemote(remote.Name, remote.Price, remote.TaxRate, remote.ModTime)
	p.LinkRemote(remote.ID)
	return a.repo.Save(ctx, p)
}

func (a *productAdapter) AfterPush(ctx context.Context, client possync.Client, id uuid.UUID, remoteID int64, warn func(string)) error {
	p, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("product %s not loaded", id)
	}
	return a.projector.Project(ctx, client, p, warn)
}

var _ kindAdapter = (*productAdapter)(nil)
