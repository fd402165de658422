package scheduler

import "errors"

var (
	// ErrInvalidConfig indicates the scheduler configuration is invalid
	ErrInvalidConfig = errors.New("scheduler: invalid configuration")
	// ErrSchedulerNotRunning indicates a job was submitted before Start
	ErrSchedulerNotRunning = errors.New("scheduler: not running")
	// ErrJobQueueFull indicates the job queue is at capacity
	ErrJobQueueFull = errors.New("scheduler: job queue full")
)
