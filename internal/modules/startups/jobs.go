package startups

import (
	"context"
	"time"
)

// RefreshJob periodically re-syncs records from the analysis backend.
// Implements scheduler.Job.
type RefreshJob struct {
	service *SyncService
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(service *SyncService) *RefreshJob {
	return &RefreshJob{service: service}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "startup_refresh"
}

// Timeout bounds one refresh cycle, including the outbound fetch.
func (j *RefreshJob) Timeout() time.Duration {
	return 60 * time.Second
}

// Run performs one refresh cycle. A failed fetch is reported as an error
// but leaves the persisted records and snapshot untouched.
func (j *RefreshJob) Run(ctx context.Context) error {
	_, err := j.service.Refresh(ctx)
	return err
}
