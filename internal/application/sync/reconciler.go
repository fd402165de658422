package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// Reconciler runs the generic catalog reconciliation algorithm for one entity
// kind. The remote set is fetched once per run; there is no sync cursor, so
// correctness rests entirely on the modtime comparison. Equal modtime means
// no action, which is what makes re-runs produce zero writes.
type Reconciler struct {
	logger *zap.Logger
}

// NewReconciler creates a new reconciler
func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile synchronizes one kind between the local store and the POS.
// Semantic rejections and unmet preconditions are counted per entity and the
// run continues; a transient failure aborts the run so the caller can retry
// it wholesale.
func (r *Reconciler) Reconcile(ctx context.Context, shopID uuid.UUID, direction possync.Direction, client possync.Client, adapter kindAdapter) (possync.KindSummary, error) {
	summary := possync.KindSummary{Kind: adapter.Kind()}
	if direction == possync.DirectionOff {
		return summary, nil
	}

	log := r.logger.With(
		zap.String("shop_id", shopID.String()),
		zap.String("kind", adapter.Kind().String()),
		zap.String("direction", direction.String()),
	)

	locals, err := adapter.Load(ctx, shopID)
	if err != nil {
		return summary, fmt.Errorf("load local %s set: %w", adapter.Kind(), err)
	}

	remotes, err := client.ListEntities(ctx, adapter.Kind())
	if err != nil {
		return summary, fmt.Errorf("fetch remote %s set: %w", adapter.Kind(), err)
	}

	remoteByID := make(map[int64]possync.RemoteEntity, len(remotes))
	for _, re := range remotes {
		remoteByID[re.ID] = re
	}

	// claimed marks remote ids already owned by a local entity
	claimed := make(map[int64]bool, len(locals))
	for i := range locals {
		if locals[i].RemoteID != nil {
			claimed[*locals[i].RemoteID] = true
		}
	}

	// Matching pass: unlinked locals adopt a case-insensitive exact name
	// match among unclaimed remotes. Linking instead of creating is what
	// prevents duplicates when both systems already carry the same entity.
	for i := range locals {
		local := &locals[i]
		if local.RemoteID != nil {
			continue
		}
		for _, re := range remotes {
			if claimed[re.ID] || !strings.EqualFold(re.Name, local.Name) {
				continue
			}
			if err := adapter.Link(ctx, local.ID, re.ID); err != nil {
				return summary, fmt.Errorf("link %s %q: %w", adapter.Kind(), local.Name, err)
			}
			remoteID := re.ID
			local.RemoteID = &remoteID
			claimed[re.ID] = true
			summary.Linked++
			break
		}
	}

	if direction.ShouldPush() {
		if err := r.pushHalf(ctx, client, adapter, locals, remoteByID, claimed, &summary, log); err != nil {
			return summary, err
		}
	}

	if direction.ShouldPull() {
		if err := r.pullHalf(ctx, shopID, adapter, remotes, locals, remoteByID, claimed, &summary); err != nil {
			return summary, err
		}
	}

	log.Info("Kind reconciled",
		zap.Int("created", summary.Created),
		zap.Int("linked", summary.Linked),
		zap.Int("updated", summary.Updated),
		zap.Int("recreated", summary.Recreated),
		zap.Int("pulled_created", summary.PulledCreated),
		zap.Int("pulled_updated", summary.PulledUpdated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// pushHalf drives local changes toward the POS
func (r *Reconciler) pushHalf(ctx context.Context, client possync.Client, adapter kindAdapter, locals []entityView, remoteByID map[int64]possync.RemoteEntity, claimed map[int64]bool, summary *possync.KindSummary, log *zap.Logger) error {
	for i := range locals {
		local := &locals[i]

		if local.RemoteID == nil {
			// Never seen remotely: create
			remoteID, ok, err := r.createRemote(ctx, client, adapter, local, summary)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			local.RemoteID = &remoteID
			claimed[remoteID] = true
			summary.Created++
		} else if remote, exists := remoteByID[*local.RemoteID]; !exists {
			// Linked but the remote record vanished: recreate under a new id
			remoteID, ok, err := r.createRemote(ctx, client, adapter, local, summary)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			log.Warn("Remote record vanished, recreated",
				zap.String("name", local.Name),
				zap.Int64("old_remote_id", *local.RemoteID),
				zap.Int64("new_remote_id", remoteID),
			)
			local.RemoteID = &remoteID
			claimed[remoteID] = true
			summary.Recreated++
		} else if local.ModTime > remote.ModTime {
			// Locally newer: push an update
			fields, err := adapter.PushFields(local.ID)
			if err != nil {
				if possync.IsPrecondition(err) {
					summary.Skipped++
					summary.Warn(err.Error())
					continue
				}
				return err
			}
			if err := client.UpdateEntity(ctx, adapter.Kind(), *local.RemoteID, fields); err != nil {
				if possync.IsSemantic(err) {
					summary.Failed++
					summary.Warn(err.Error())
					continue
				}
				return err
			}
			summary.Updated++
		}

		// Equal or remotely-newer modtime needs no push; the pull half
		// handles the remotely-newer case.

		if local.RemoteID != nil {
			if err := adapter.AfterPush(ctx, client, local.ID, *local.RemoteID, summary.Warn); err != nil {
				if possync.IsSemantic(err) {
					summary.Failed++
					summary.Warn(err.Error())
					continue
				}
				return err
			}
		}
	}
	return nil
}

// createRemote creates the POS counterpart for a local entity. Returns false
// without error when the entity was skipped or rejected.
func (r *Reconciler) createRemote(ctx context.Context, client possync.Client, adapter kindAdapter, local *entityView, summary *possync.KindSummary) (int64, bool, error) {
	fields, err := adapter.PushFields(local.ID)
	if err != nil {
		if possync.IsPrecondition(err) {
			summary.Skipped++
			summary.Warn(err.Error())
			return 0, false, nil
		}
		return 0, false, err
	}

	remoteID, err := client.CreateEntity(ctx, adapter.Kind(), fields)
	if err != nil {
		if possync.IsSemantic(err) {
			summary.Failed++
			summary.Warn(err.Error())
			return 0, false, nil
		}
		return 0, false, err
	}

	if err := adapter.Link(ctx, local.ID, remoteID); err != nil {
		return 0, false, fmt.Errorf("link %s %q after create: %w", adapter.Kind(), local.Name, err)
	}
	return remoteID, true, nil
}

// pullHalf drives POS changes back into the local store
func (r *Reconciler) pullHalf(ctx context.Context, shopID uuid.UUID, adapter kindAdapter, remotes []possync.RemoteEntity, locals []entityView, remoteByID map[int64]possync.RemoteEntity, claimed map[int64]bool, summary *possync.KindSummary) error {
	for _, re := range remotes {
		if claimed[re.ID] {
			continue
		}
		if err := adapter.CreateLocal(ctx, shopID, re); err != nil {
			return fmt.Errorf("create local %s from remote %d: %w", adapter.Kind(), re.ID, err)
		}
		summary.PulledCreated++
	}

	for i := range locals {
		local := &locals[i]
		if local.RemoteID == nil {
			continue
		}
		re, ok := remoteByID[*local.RemoteID]
		if !ok || re.ModTime <= local.ModTime {
			continue
		}
		if err := adapter.Overwrite(ctx, local.ID, re); err != nil {
			return fmt.Errorf("overwrite local %s %q: %w", adapter.Kind(), local.Name, err)
		}
		summary.PulledUpdated++
	}
	return nil
}
