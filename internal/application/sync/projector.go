package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/possync"
)

// Projector replaces a POS product's modifier slots with the local product's
// modifier group assignments. Each slot submission is a full overwrite of
// whatever the slot held before, never a merge.
type Projector struct {
	subproducts catalog.SubproductRepository
	logger      *zap.Logger
}

// NewProjector creates a new modifier group projector
func NewProjector(subproducts catalog.SubproductRepository, logger *zap.Logger) *Projector {
	return &Projector{
		subproducts: subproducts,
		logger:      logger,
	}
}

// Project pushes the product's modifier groups onto its POS counterpart.
// Members without a remote counterpart are dropped from the projection with a
// warning; they pick themselves up on the run after their kind has synced.
func (p *Projector) Project(ctx context.Context, client possync.Client, product *catalog.Product, warn func(string)) error {
	if product.RemoteID == nil {
		return nil
	}

	groups := product.SortedModifierGroups()
	if len(groups) == 0 {
		return nil
	}
	if len(groups) > catalog.MaxModifierSlots {
		warn(fmt.Sprintf("product %q has %d modifier groups, only the first %d fit on the register",
			product.Name, len(groups), catalog.MaxModifierSlots))
		groups = groups[:catalog.MaxModifierSlots]
	}

	remoteBySubproduct, err := p.resolveMembers(ctx, product.ShopID, groups)
	if err != nil {
		return err
	}

	for i := range groups {
		g := &groups[i]
		if g.Slot > catalog.MaxModifierSlots {
			warn(fmt.Sprintf("modifier group %q on product %q uses slot %d beyond the register limit",
				g.Title, product.Name, g.Slot))
			continue
		}

		memberIDs := make([]int64, 0, len(g.MemberIDs))
		for _, memberID := range g.MemberIDs {
			remoteID, ok := remoteBySubproduct[memberID]
			if !ok {
				warn(fmt.Sprintf("%v: subproduct %s in group %q on product %q",
					possync.ErrMemberNotLinked, memberID, g.Title, product.Name))
				continue
			}
			memberIDs = append(memberIDs, remoteID)
		}

		var defaultMemberID int64
		if g.DefaultSubproductID != nil {
			defaultMemberID = remoteBySubproduct[*g.DefaultSubproductID]
		}

		group := possync.RemoteModifierGroup{
			Slot:               g.Slot,
			Title:              g.Title,
			MultiSelect:        g.MultiSelect,
			MinSelect:          g.MinSelect,
			MaxSelect:          g.MaxSelect,
			RequiredOnWeb:      g.RequiredOnWeb,
			RequiredOnRegister: g.RequiredOnRegister,
			DefaultMemberID:    defaultMemberID,
			MemberIDs:          memberIDs,
		}

		if err := client.UpdateModifierGroup(ctx, *product.RemoteID, group); err != nil {
			return err
		}
	}

	return nil
}

// resolveMembers maps every referenced subproduct to its POS id, where linked
func (p *Projector) resolveMembers(ctx context.Context, shopID uuid.UUID, groups []catalog.ModifierGroupAssignment) (map[uuid.UUID]int64, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range groups {
		for _, memberID := range groups[i].MemberIDs {
			if _, ok := seen[memberID]; !ok {
				seen[memberID] = struct{}{}
				ids = append(ids, memberID)
			}
		}
		if d := groups[i].DefaultSubproductID; d != nil {
			if _, ok := seen[*d]; !ok {
				seen[*d] = struct{}{}
				ids = append(ids, *d)
			}
		}
	}

	subproducts, err := p.subproducts.FindByIDs(ctx, shopID, ids)
	if err != nil {
		return nil, err
	}

	remoteBySubproduct := make(map[uuid.UUID]int64, len(subproducts))
	for i := range subproducts {
		if subproducts[i].RemoteID != nil {
			remoteBySubproduct[subproducts[i].ID] = *subproducts[i].RemoteID
		}
	}
	return remoteBySubproduct, nil
}
