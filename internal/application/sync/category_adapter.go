package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/possync"
)

// categoryAdapter reconciles categories
type categoryAdapter struct {
	repo   catalog.CategoryRepository
	loaded map[uuid.UUID]*catalog.Category
}

func newCategoryAdapter(repo catalog.CategoryRepository) *categoryAdapter {
	return &categoryAdapter{
		repo:   repo,
		loaded: make(map[uuid.UUID]*catalog.Category),
	}
}

func (a *categoryAdapter) Kind() possync.EntityKind {
	return possync.KindCategory
}

func (a *categoryAdapter) Load(ctx context.Context, shopID uuid.UUID) ([]entityView, error) {
	categories, err := a.repo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	views := make([]entityView, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		a.loaded[c.ID] = c
		views = append(views, entityView{
			ID:       c.ID,
			Name:     c.Name,
			ModTime:  c.ModTime,
			RemoteID: c.RemoteID,
		})
	}
	return views, nil
}

func (a *categoryAdapter) PushFields(id uuid.UUID) (possync.RemoteFields, error) {
	c, ok := a.loaded[id]
	if !ok {
		return possync.RemoteFields{}, fmt.Errorf("category %s not loaded", id)
	}
	return possync.RemoteFields{
		Name:    c.Name,
		ModTime: c.ModTime,
	}, nil
}

func (a *categoryAdapter) Link(ctx context.Context, id uuid.UUID, remoteID int64) error {
	c, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("category %s not loaded", id)
	}
	c.LinkRemote(remoteID)
	return a.repo.Save(ctx, c)
}

func (a *categoryAdapter) Overwrite(ctx context.Context, id uuid.UUID, remote possync.RemoteEntity) error {
	c, ok := a.loaded[id]
	if !ok {
		return fmt.Errorf("category %s not loaded", id)
	}
	c.ApplyRemote(remote.Name, remote.ModTime)
	return a.repo.Save(ctx, c)
}

func (a *categoryAdapter) CreateLocal(ctx context.Context, shopID uuid.UUID, remote possync.RemoteEntity) error {
	c, err := catalog.NewCategory(shopID, remote.Name)
	if err != nil {
		return err
	}
	// Adopt the remote clock so a re-run sees the pair as equal
	c.ApplyRemote(remote.Name, remote.ModTime)
	c.LinkRemote(remote.ID)
	return a.repo.Save(ctx, c)
}

func (a *categoryAdapter) AfterPush(ctx context.Context, client possync.Client, id uuid.UUID, remoteID int64, warn func(string)) error {
	return nil
}

var _ kindAdapter = (*categoryAdapter)(nil)
