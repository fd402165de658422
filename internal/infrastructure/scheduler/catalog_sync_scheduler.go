package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/possync"
	"github.com/frituurapp/backend/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Catalog Sync Job Types
// ---------------------------------------------------------------------------

// CatalogSyncJobStatus represents the status of a catalog sync job
type CatalogSyncJobStatus string

const (
	CatalogSyncJobStatusPending CatalogSyncJobStatus = "PENDING"
	CatalogSyncJobStatusRunning CatalogSyncJobStatus = "RUNNING"
	CatalogSyncJobStatusSuccess CatalogSyncJobStatus = "SUCCESS"
	// CatalogSyncJobStatusSkipped means another run already held the shop's
	// sync lock; the next interval tick covers the shop again
	CatalogSyncJobStatusSkipped CatalogSyncJobStatus = "SKIPPED"
	CatalogSyncJobStatusFailed  CatalogSyncJobStatus = "FAILED"
)

// CatalogSyncJob represents one scheduled catalog sync for a shop
type CatalogSyncJob struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	Status      CatalogSyncJobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time

	// Sync results
	Writes   int
	Warnings int
}

// NewCatalogSyncJob creates a new catalog sync job
func NewCatalogSyncJob(shopID uuid.UUID, maxRetries int) *CatalogSyncJob {
	return &CatalogSyncJob{
		ID:         uuid.New(),
		ShopID:     shopID,
		Status:     CatalogSyncJobStatusPending,
		MaxRetries: maxRetries,
	}
}

// Start marks the job as running
func (j *CatalogSyncJob) Start() {
	now := time.Now()
	j.Status = CatalogSyncJobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *CatalogSyncJob) Complete(writes, warnings int) {
	now := time.Now()
	j.Status = CatalogSyncJobStatusSuccess
	j.Writes = writes
	j.Warnings = warnings
	j.CompletedAt = &now
}

// Skip marks the job as skipped because the shop's sync lock was held
func (j *CatalogSyncJob) Skip() {
	now := time.Now()
	j.Status = CatalogSyncJobStatusSkipped
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *CatalogSyncJob) Fail(err string) {
	now := time.Now()
	j.Status = CatalogSyncJobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// ShouldRetry returns true if the job should be retried
func (j *CatalogSyncJob) ShouldRetry() bool {
	return j.Status == CatalogSyncJobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry schedules the job for retry with exponential backoff
func (j *CatalogSyncJob) ScheduleRetry(baseDelay time.Duration) {
	j.RetryCount++
	j.Status = CatalogSyncJobStatusPending
	delay := baseDelay * time.Duration(1<<(j.RetryCount-1))
	if delay > 30*time.Minute {
		delay = 30 * time.Minute
	}
	nextRetry := time.Now().Add(delay)
	j.NextRetryAt = &nextRetry
	j.Error = ""
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// CatalogSyncer runs one catalog sync for a shop
type CatalogSyncer interface {
	SyncCatalog(ctx context.Context, shopID uuid.UUID) (*possync.RunSummary, error)
}

// ---------------------------------------------------------------------------
// CatalogSyncSchedulerConfig
// ---------------------------------------------------------------------------

// CatalogSyncSchedulerConfig holds configuration for the catalog sync scheduler
type CatalogSyncSchedulerConfig struct {
	// Enabled indicates if the scheduler is enabled
	Enabled bool
	// Interval is how often every enabled shop is enqueued for a sync
	Interval time.Duration
	// MaxConcurrentJobs is the maximum number of concurrent sync jobs
	MaxConcurrentJobs int
	// JobTimeout is the maximum time a job can run
	JobTimeout time.Duration
	// RetryAttempts is the number of retry attempts for transient failures
	RetryAttempts int
	// RetryDelay is the base delay between retries (with exponential backoff)
	RetryDelay time.Duration
}

// DefaultCatalogSyncSchedulerConfig returns default configuration
func DefaultCatalogSyncSchedulerConfig() CatalogSyncSchedulerConfig {
	return CatalogSyncSchedulerConfig{
		Enabled:           true,
		Interval:          15 * time.Minute,
		MaxConcurrentJobs: 3,
		JobTimeout:        10 * time.Minute,
		RetryAttempts:     3,
		RetryDelay:        time.Minute,
	}
}

// Validate validates the configuration
func (c *CatalogSyncSchedulerConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxConcurrentJobs <= 0 {
		return ErrInvalidConfig
	}
	if c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.RetryAttempts < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// CatalogSyncScheduler
// ---------------------------------------------------------------------------

// CatalogSyncScheduler periodically enqueues a catalog sync job for every
// enabled shop connection and runs the jobs on a bounded worker pool. Only
// transient failures are retried; a semantic failure will fail identically
// until the catalog changes, so retrying it within the interval is wasted work.
type CatalogSyncScheduler struct {
	config      CatalogSyncSchedulerConfig
	syncer      CatalogSyncer
	connections possync.ConnectionRepository
	logger      *zap.Logger

	jobs      chan *CatalogSyncJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// Job history for monitoring (in-memory, limited size)
	historyMu  sync.RWMutex
	history    []*CatalogSyncJob
	maxHistory int
}

// NewCatalogSyncScheduler creates a new catalog sync scheduler
func NewCatalogSyncScheduler(config CatalogSyncSchedulerConfig, syncer CatalogSyncer, connections possync.ConnectionRepository, logger *zap.Logger) (*CatalogSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &CatalogSyncScheduler{
		config:      config,
		syncer:      syncer,
		connections: connections,
		logger:      logger,
		jobs:        make(chan *CatalogSyncJob, 100),
		history:     make([]*CatalogSyncJob, 0, 100),
		maxHistory:  100,
	}, nil
}

// Start starts the worker pool and the interval ticker
func (s *CatalogSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.wg.Add(1)
	go s.tick(ctx)

	s.logger.Info("Catalog sync scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("interval", s.config.Interval),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *CatalogSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Catalog sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Catalog sync scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob submits a job for execution
func (s *CatalogSyncScheduler) SubmitJob(job *CatalogSyncJob) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	select {
	case s.jobs <- job:
		s.logger.Debug("Catalog sync job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("shop_id", job.ShopID.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// EnqueueAllShops submits one job per enabled shop connection. Shops with
// direction off are left out; a sync for them would be a no-op anyway.
func (s *CatalogSyncScheduler) EnqueueAllShops(ctx context.Context) {
	connections, err := s.connections.FindAllEnabled(ctx)
	if err != nil {
		s.logger.Error("Failed to list enabled connections", zap.Error(err))
		return
	}

	for i := range connections {
		conn := &connections[i]
		if conn.Direction == possync.DirectionOff {
			continue
		}
		job := NewCatalogSyncJob(conn.ShopID, s.config.RetryAttempts)
		if err := s.SubmitJob(job); err != nil {
			s.logger.Warn("Failed to enqueue catalog sync job",
				zap.String("shop_id", conn.ShopID.String()),
				zap.Error(err),
			)
		}
	}
}

// tick enqueues all shops on every interval
func (s *CatalogSyncScheduler) tick(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// First pass right away so a restart does not wait a full interval
	s.EnqueueAllShops(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EnqueueAllShops(ctx)
		}
	}
}

// worker processes jobs from the queue
func (s *CatalogSyncScheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Catalog sync worker stopping", zap.Int("worker_id", workerID))
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			s.processJob(ctx, job, workerID)
		}
	}
}

// processJob executes a single job
func (s *CatalogSyncScheduler) processJob(ctx context.Context, job *CatalogSyncJob, workerID int) {
	// Retried jobs wait out their backoff in the queue
	if job.NextRetryAt != nil && time.Now().Before(*job.NextRetryAt) {
		select {
		case s.jobs <- job:
		default:
			s.logger.Warn("Failed to re-queue catalog sync job for retry",
				zap.String("job_id", job.ID.String()),
			)
		}
		return
	}

	job.Start()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	summary, err := s.syncer.SyncCatalog(jobCtx, job.ShopID)
	if err != nil {
		if errors.Is(err, shared.ErrSyncInFlight) {
			job.Skip()
			s.logger.Debug("Catalog sync job skipped, shop lock held",
				zap.String("job_id", job.ID.String()),
				zap.String("shop_id", job.ShopID.String()),
			)
			s.addToHistory(job)
			return
		}

		job.Fail(err.Error())
		s.logger.Error("Catalog sync job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("shop_id", job.ShopID.String()),
			zap.Error(err),
		)

		if possync.IsTransient(err) && job.ShouldRetry() {
			job.ScheduleRetry(s.config.RetryDelay)
			s.logger.Info("Catalog sync job scheduled for retry",
				zap.String("job_id", job.ID.String()),
				zap.Int("retry_count", job.RetryCount),
				zap.Int("max_retries", job.MaxRetries),
				zap.Time("next_retry_at", *job.NextRetryAt),
			)
			select {
			case s.jobs <- job:
			default:
				s.logger.Warn("Failed to re-queue catalog sync job for retry",
					zap.String("job_id", job.ID.String()),
				)
			}
		}

		s.addToHistory(job)
		return
	}

	warnings := 0
	for i := range summary.Kinds {
		warnings += len(summary.Kinds[i].Warnings)
	}
	job.Complete(summary.Writes(), warnings)

	s.logger.Info("Catalog sync job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("shop_id", job.ShopID.String()),
		zap.Int("writes", job.Writes),
		zap.Int("warnings", job.Warnings),
	)

	s.addToHistory(job)
}

// addToHistory adds a completed job to history
func (s *CatalogSyncScheduler) addToHistory(job *CatalogSyncJob) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append([]*CatalogSyncJob{job}, s.history...)
	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
}

// GetJobHistory returns recent job history, newest first
func (s *CatalogSyncScheduler) GetJobHistory(limit int) []*CatalogSyncJob {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}

	result := make([]*CatalogSyncJob, limit)
	copy(result, s.history[:limit])
	return result
}
