package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopsync/core/storage"
	"shopsync/feature/shopify/models"
	syncstore "shopsync/feature/shopify/store"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Platform is the label stamped on every reconciled row and identity key.
const Platform = "Shopify"

// successLogLimit bounds per-item Success logs per run so a large full
// sync cannot flood the log table. Error logs are never throttled.
const successLogLimit = 100

// Extractor fetches the flat fact set for one store and one flavor.
type Extractor interface {
	FullInventory(ctx context.Context, store string) ([]models.InventoryFact, error)
	IncrementalInventory(ctx context.Context, store string, fromUTC, toUTC time.Time) ([]models.InventoryFact, error)
	Prices(ctx context.Context, store string) ([]models.InventoryFact, error)
}

// Inventory reconciles one fact into internal storage.
type Inventory interface {
	Upsert(ctx context.Context, fact *models.InventoryFact, platform string) (syncstore.UpsertResult, error)
}

// RunTracker persists run lifecycle records and per-item logs.
type RunTracker interface {
	Begin(ctx context.Context, syncType models.SyncType) (uint64, error)
	LogItem(ctx context.Context, runID uint64, entry models.LogEntry)
	Finish(ctx context.Context, runID uint64, status models.RunStatus, counts models.SyncCounts, message string) error
	ListRecent(ctx context.Context, limit int) ([]models.SyncRun, error)
}

// Service orchestrates sync runs: it iterates the configured stores,
// extracts facts, reconciles them one by one and drives the run tracker
// lifecycle. Run always returns a summary, it never propagates an error.
type Service struct {
	client    Extractor
	inventory Inventory
	runs      RunTracker
	stores    []string
	logger    *zap.Logger

	archive       storage.Client
	archiveBucket string
}

// NewService creates a sync orchestrator for the given store list.
// An empty store list falls back to a single implicit store.
func NewService(client Extractor, inventory Inventory, runs RunTracker, stores []string, logger *zap.Logger) *Service {
	if len(stores) == 0 {
		stores = []string{"default"}
	}
	return &Service{
		client:    client,
		inventory: inventory,
		runs:      runs,
		stores:    stores,
		logger:    logger,
	}
}

// SetArchive enables best-effort archival of finished run summaries to
// object storage.
func (s *Service) SetArchive(client storage.Client, bucket string) {
	s.archive = client
	s.archiveBucket = bucket
}

// RecentRuns returns the most recent run rows, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	return s.runs.ListRecent(ctx, limit)
}

// Run executes one sync of the given flavor across all configured stores.
//
// Per-item faults are counted and logged but never stop the run. A fault
// escaping a per-store extraction call marks the run Failed and skips the
// remaining stores. The run row is finalized on every exit path, including
// a panic inside the run body, with whatever counts were accumulated.
func (s *Service) Run(ctx context.Context, flavor models.SyncType) (summary models.SyncSummary) {
	summary = models.SyncSummary{
		SyncType:  flavor,
		StartTime: time.Now().UTC(),
		Status:    models.RunStatusInProgress,
	}

	runID, err := s.runs.Begin(ctx, flavor)
	if err != nil {
		s.logger.Error("Failed to create run record", zap.Error(err))
		end := time.Now().UTC()
		summary.EndTime = &end
		summary.Status = models.RunStatusFailed
		summary.Message = err.Error()
		return summary
	}
	summary.RunID = runID

	log := s.logger.With(
		zap.Uint64("run_id", runID),
		zap.String("sync_type", string(flavor)))
	log.Info("Sync run started", zap.Strings("stores", s.stores))

	var runErr error

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic during sync run: %v", r)
			log.Error("Sync run panicked", zap.Any("panic", r))
		}

		switch {
		case runErr != nil:
			summary.Status = models.RunStatusFailed
			summary.Message = runErr.Error()
		case summary.Counts.Failed > 0:
			summary.Status = models.RunStatusCompletedWithErrors
		default:
			summary.Status = models.RunStatusCompleted
		}

		end := time.Now().UTC()
		summary.EndTime = &end

		if err := s.runs.Finish(ctx, runID, summary.Status, summary.Counts, summary.Message); err != nil {
			log.Error("Failed to finalize run record", zap.Error(err))
		}
		s.archiveSummary(ctx, log, &summary)

		log.Info("Sync run finished",
			zap.String("status", string(summary.Status)),
			zap.Int("total", summary.Counts.TotalItems),
			zap.Int("inserted", summary.Counts.Inserted),
			zap.Int("updated", summary.Counts.Updated),
			zap.Int("failed", summary.Counts.Failed))
	}()

	successLogged := 0

	for _, storeName := range s.stores {
		facts, err := s.extract(ctx, storeName, flavor)
		if err != nil {
			runErr = err
			log.Error("Extraction failed, skipping remaining stores",
				zap.String("store", storeName),
				zap.Error(err))
			s.runs.LogItem(ctx, runID, models.LogEntry{
				Type:       models.LogTypeError,
				Identifier: storeName,
				Message:    "Extraction failed",
				Detail:     err.Error(),
			})
			break
		}

		summary.Counts.TotalItems += len(facts)
		log.Info("Store extracted",
			zap.String("store", storeName),
			zap.Int("facts", len(facts)))

		for i := range facts {
			fact := &facts[i]

			result, err := s.inventory.Upsert(ctx, fact, Platform)
			if err != nil {
				summary.Counts.Failed++
				log.Error("Failed to reconcile item",
					zap.String("identifier", fact.Identifier()),
					zap.Error(err))
				s.runs.LogItem(ctx, runID, models.LogEntry{
					Type:       models.LogTypeError,
					Identifier: fact.Identifier(),
					Message:    "Failed to update inventory",
					Detail:     err.Error(),
				})
				continue
			}

			if result.UnmatchedEAN {
				s.runs.LogItem(ctx, runID, models.LogEntry{
					Type:       models.LogTypeWarning,
					Identifier: fact.Identifier(),
					Message:    "No internal product match",
					Detail:     "ean: " + fact.EAN,
				})
			}

			if !result.Existed {
				summary.Counts.Inserted++
			} else if result.Updated {
				summary.Counts.Updated++
			}

			if successLogged < successLogLimit {
				successLogged++
				s.runs.LogItem(ctx, runID, models.LogEntry{
					Type:       models.LogTypeSuccess,
					Identifier: fact.Identifier(),
					Message:    "Item synchronized",
				})
			}
		}
	}

	return summary
}

// extract dispatches to the flavor-specific client call. The incremental
// window is always the full previous UTC calendar day, recomputed here at
// call time.
func (s *Service) extract(ctx context.Context, storeName string, flavor models.SyncType) ([]models.InventoryFact, error) {
	switch flavor {
	case models.SyncTypeFullInventory:
		return s.client.FullInventory(ctx, storeName)
	case models.SyncTypeIncrementalInventory:
		from, to := previousUTCDay(time.Now().UTC())
		return s.client.IncrementalInventory(ctx, storeName, from, to)
	case models.SyncTypePriceUpdate:
		return s.client.Prices(ctx, storeName)
	default:
		return nil, fmt.Errorf("unknown sync type %q", flavor)
	}
}

// previousUTCDay returns [yesterday 00:00:00 UTC, today 00:00:00 UTC - 1ns].
func previousUTCDay(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -1), today.Add(-time.Nanosecond)
}

// archiveSummary uploads the finished summary as JSON. Best effort only.
func (s *Service) archiveSummary(ctx context.Context, log *zap.Logger, summary *models.SyncSummary) {
	if s.archive == nil {
		return
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Error("Failed to marshal run summary", zap.Error(err))
		return
	}

	objName := fmt.Sprintf("runs/%d.json", summary.RunID)
	_, err = s.archive.PutObject(ctx, s.archiveBucket, objName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		log.Error("Failed to archive run summary",
			zap.String("object", objName),
			zap.Error(err))
		return
	}
	log.Debug("Run summary archived", zap.String("object", objName))
}
