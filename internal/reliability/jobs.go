package reliability

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const backupRetentionDays = 30

// BackupJob creates and uploads a backup, then rotates old archives.
type BackupJob struct {
	service *BackupService
	log     zerolog.Logger
}

func NewBackupJob(service *BackupService, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		service: service,
		log:     log.With().Str("job", "backup").Logger(),
	}
}

func (j *BackupJob) Name() string {
	return "backup"
}

// Timeout covers staging, archiving and a multipart upload of the
// full data directory.
func (j *BackupJob) Timeout() time.Duration {
	return 10 * time.Minute
}

func (j *BackupJob) Run(ctx context.Context) error {
	if err := j.service.CreateAndUploadBackup(ctx); err != nil {
		return err
	}

	if err := j.service.RotateOldBackups(ctx, backupRetentionDays); err != nil {
		j.log.Warn().Err(err).Msg("Backup rotation failed")
	}

	return nil
}
