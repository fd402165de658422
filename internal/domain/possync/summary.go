package possync

import (
	"time"

	"github.com/google/uuid"
)

// KindSummary reports what one kind's reconciliation pass did. The invoking
// layer receives counts, not a single pass/fail bit.
type KindSummary struct {
	Kind EntityKind `json:"kind"`
	// Created counts remote creations for previously unlinked locals
	Created int `json:"created"`
	// Linked counts locals adopted onto an existing remote by name match
	Linked int `json:"linked"`
	// Updated counts remote updates pushed for locally-newer entities
	Updated int `json:"updated"`
	// Recreated counts orphan recoveries (remote record vanished)
	Recreated int `json:"recreated"`
	// PulledCreated counts locals created from unmatched remotes
	PulledCreated int `json:"pulled_created"`
	// PulledUpdated counts locals overwritten from remotely-newer entities
	PulledUpdated int `json:"pulled_updated"`
	// Skipped counts entities skipped on an unmet precondition
	Skipped int `json:"skipped"`
	// Failed counts entities the POS rejected
	Failed int `json:"failed"`
	// Warnings carries recoverable per-entity messages
	Warnings []string `json:"warnings,omitempty"`
}

// Writes returns the number of write operations the pass performed on either
// side. Zero writes on a re-run is the idempotency signal.
func (s *KindSummary) Writes() int {
	return s.Created + s.Linked + s.Updated + s.Recreated + s.PulledCreated + s.PulledUpdated
}

// Warn appends a recoverable warning message
func (s *KindSummary) Warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// RunSummary aggregates one catalog sync invocation
type RunSummary struct {
	ShopID     uuid.UUID     `json:"shop_id"`
	Direction  Direction     `json:"direction"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Kinds      []KindSummary `json:"kinds"`
}

// Writes returns the total write operations across all kinds
func (r *RunSummary) Writes() int {
	total := 0
	for i := range r.Kinds {
		total += r.Kinds[i].Writes()
	}
	return total
}

// OrderPushResult reports one order push attempt
type OrderPushResult struct {
	OrderID       uuid.UUID `json:"order_id"`
	RemoteOrderID int64     `json:"remote_order_id"`
	// AlreadyPushed is true when the order had a remote id before this call
	// and no network call was made
	AlreadyPushed bool `json:"already_pushed"`
	// LinesPushed counts the unit lines submitted
	LinesPushed int      `json:"lines_pushed"`
	Warnings    []string `json:"warnings,omitempty"`
}
