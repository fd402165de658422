package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/possync"
)

// subproductAdapter reconciles modifier items
type subproductAdapter struct {
	repo   catalog.SubproductRepository
	loaded map[uuid.UUID]*catalog.Subproduct
}

func newSubproductAdapter(repo catalog.SubproductRepository) *subproductAdapter {
	return &subproductAdapter{
		repo:   repo,
		loaded: make(map[uuid.UUID]*catalog.Subproduct),
	}
}

func (a *subproductAdapter) Kind() possync.EntityKind {
	return possync.KindSubproduct
}

func (a *subproductAdapter) Load(ctx context.Context, shopID uuid.UUID) ([]entityView, error) {
	subproducts, err := a.repo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	views := make([]entityView, 0, len(subproducts))
	for i := range subproducts {
		s := &subproducts[i]
		a.loaded[s.ID] = s
		views = append(views, entityView{
			ID:       s.ID,
			Name:     s.Name,
			ModTime:  s.ModTime,
			RemoteID: s.RemoteID,
		})
	}
	return views, nil
}

func (a *subproductAdapter) PushFields(id uuid.UUID) (possync.RemoteFields, error) {
	s, ok := a.loaded[id]
	if !ok {
		return possync.RemoteFields{}, fmt.Errorf("subproduct %s not loaded", id)
	}
	return possync.RemoteFields{
		Name:    s.Name,
		Price:   s.Price,
		TaxRate: s.TaxRate,
		ModTime: s.ModTime,
	}, nil
}

func (a *subproductAdapter) Link(ctx context.Context, id uuid.UUID, remoteID int64) error {
	s, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("subproduct %s not loaded", id)
	}
	s.LinkRemote(remoteID)
	return a.repo.Save(ctx, s)
}

func (a *subproductAdapter) Overwrite(ctx context.Context, id uuid.UUID, remote possync.RemoteEntity) error {
	s, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("subproduct %s not loaded", id)
	}
	s.ApplyRemote(remote.Name, remote.Price, remote.TaxRate, remote.ModTime)
	return a.repo.Save(ctx, s)
}

func (a *subproductAdapter) CreateLocal(ctx context.Context, shopID uuid.UUID, remote possync.RemoteEntity) error {
	s, err := catalog.NewSubproduct(shopID, remote.Name, remote.Price)
	if err != nil {
		return err
	}
	s.ApplyRemote(remote.Name, remote.Price, remote.TaxRate, remote.ModTime)
	s.LinkRemote(remote.ID)
	return a.repo.Save(ctx, s)
}

func (a *subproductAdapter) AfterPush(ctx context.Context, client possync.Client, id uuid.UUID, remoteID int64, warn func(string)) error {
	return nil
}

var _ kindAdapter = (*subproductAdapter)(nil)
