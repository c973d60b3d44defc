package store

import (
	"context"
	"fmt"
	"time"

	"shopsync/feature/shopify/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxFieldLen bounds every string column of the run and log tables.
// Longer values are truncated before the write, never rejected.
const MaxFieldLen = 50

// Truncate bounds a string to the persisted column length.
func Truncate(s string) string {
	if len(s) <= MaxFieldLen {
		return s
	}
	return s[:MaxFieldLen]
}

// RunRepository tracks sync-run lifecycle rows and their per-item logs.
// The run id returned by Begin must accompany every subsequent write;
// there is no implicit current-run state.
type RunRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRunRepository creates a run repository.
func NewRunRepository(db *gorm.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{db: db, logger: logger}
}

// Begin inserts a run row with status InProgress and zero counts and
// returns its id.
func (r *RunRepository) Begin(ctx context.Context, syncType models.SyncType) (uint64, error) {
	run := models.SyncRun{
		SyncType:  string(syncType),
		StartedAt: time.Now().UTC(),
		Status:    string(models.RunStatusInProgress),
	}
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return 0, fmt.Errorf("failed to create run record: %w", err)
	}
	return run.ID, nil
}

// LogItem writes one log entry for the given run. Every string field is
// truncated to the column bound first. Write failures are logged and
// swallowed: an audit-logging fault must never abort the sync itself.
func (r *RunRepository) LogItem(ctx context.Context, runID uint64, entry models.LogEntry) {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	row := models.SyncLog{
		RunID:      runID,
		LoggedAt:   ts,
		Type:       Truncate(string(entry.Type)),
		Identifier: Truncate(entry.Identifier),
		Message:    Truncate(entry.Message),
		Detail:     Truncate(entry.Detail),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logger.Error("Failed to persist sync log entry",
			zap.Uint64("run_id", runID),
			zap.String("type", string(entry.Type)),
			zap.Error(err))
	}
}

// Finish stamps the end time, terminal status, counts and a truncated
// message on the run row.
func (r *RunRepository) Finish(ctx context.Context, runID uint64, status models.RunStatus, counts models.SyncCounts, message string) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&models.SyncRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"finished_at": now,
			"status":      string(status),
			"message":     Truncate(message),
			"total_items": counts.TotalItems,
			"inserted":    counts.Inserted,
			"updated":     counts.Updated,
			"failed":      counts.Failed,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to finalize run %d: %w", runID, err)
	}
	return nil
}

// ListRecent returns the most recent runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []models.SyncRun
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
