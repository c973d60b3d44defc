package shopify

import (
	"shopsync/core/storage"
	"shopsync/feature/shopify/client"
	"shopsync/feature/shopify/store"
	"shopsync/feature/shopify/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *sync.Service
	handler *Handler
	db      *gorm.DB
}

// NewFeature wires the shopify feature: extraction client, repositories,
// orchestrator and HTTP handler. The archive client may be nil, in which
// case run summaries are not archived.
func NewFeature(db *gorm.DB, archive storage.Client, archiveBucket string, cfg client.Config, logg *zap.Logger) *Feature {
	extractor := client.NewClient(cfg, logg)
	inventory := store.NewInventoryRepository(db, logg)
	runs := store.NewRunRepository(db, logg)

	svc := sync.NewService(extractor, inventory, runs, cfg.StoreNames(), logg)
	if archive != nil {
		svc.SetArchive(archive, archiveBucket)
	}

	return &Feature{
		service: svc,
		handler: NewHandler(svc, logg),
		db:      db,
	}
}

// Service returns the orchestrator, used by the scheduler and CLI.
func (f *Feature) Service() *sync.Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "shopify"
}

// IsEnabled checks if the feature is enabled. Without a database there is
// nothing to reconcile into.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
