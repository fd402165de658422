package possync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/shared"
)

// SyncRunStatus is the outcome of one recorded sync run
type SyncRunStatus string

const (
	SyncRunSucceeded SyncRunStatus = "succeeded"
	SyncRunFailed    SyncRunStatus = "failed"
)

// SyncRun is the persisted record of one catalog sync invocation, kept for
// the run history endpoint and for operators chasing down a bad night.
type SyncRun struct {
	shared.BaseEntity
	ShopID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	Direction  Direction     `gorm:"type:varchar(10);not null"`
	Status     SyncRunStatus `gorm:"type:varchar(20);not null"`
	StartedAt  time.Time     `gorm:"not null"`
	FinishedAt time.Time     `gorm:"not null"`
	// Writes is the total number of write operations the run performed
	Writes int `gorm:"not null;default:0"`
	// Detail is the serialized per-kind summary
	Detail string `gorm:"type:text"`
	// Error holds the failure message for failed runs
	Error string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SyncRun) TableName() string {
	return "sync_runs"
}

// NewSyncRunFromSummary records a finished run
func NewSyncRunFromSummary(summary *RunSummary, runErr error) *SyncRun {
	run := &SyncRun{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     summary.ShopID,
		Direction:  summary.Direction,
		Status:     SyncRunSucceeded,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Writes:     summary.Writes(),
	}
	if detail, err := json.Marshal(summary.Kinds); err == nil {
		run.Detail = string(detail)
	}
	if runErr != nil {
		run.Status = SyncRunFailed
		run.Error = runErr.Error()
	}
	return run
}

// KindSummaries decodes the per-kind detail
func (r *SyncRun) KindSummaries() ([]KindSummary, error) {
	if r.Detail == "" {
		return nil, nil
	}
	var kinds []KindSummary
	if err := json.Unmarshal([]byte(r.Detail), &kinds); err != nil {
		return nil, err
	}
	return kinds, nil
}

// SyncRunRepository defines the interface for sync run persistence
type SyncRunRepository interface {
	// Save records a finished run
	Save(ctx context.Context, run *SyncRun) error

	// FindRecentForShop returns the most recent runs for a shop, newest first
	FindRecentForShop(ctx context.Context, shopID uuid.UUID, limit int) ([]SyncRun, error)
}
