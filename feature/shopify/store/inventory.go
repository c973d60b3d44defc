package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopsync/feature/shopify/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SystemActor is the audit actor stamped on system-driven writes.
const SystemActor = "SystemSync"

// UpsertResult describes the outcome of reconciling one fact.
type UpsertResult struct {
	// Existed is true when a row already matched the identity key.
	Existed bool
	// Updated is true when the write affected a row.
	Updated bool
	// UnmatchedEAN is true when the fact carried a secondary identifier but
	// no internal product matched it. The item is persisted regardless.
	UnmatchedEAN bool
}

// InventoryRepository reconciles extracted facts into the internal
// inventory table.
type InventoryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInventoryRepository creates an inventory repository.
func NewInventoryRepository(db *gorm.DB, logger *zap.Logger) *InventoryRepository {
	return &InventoryRepository{db: db, logger: logger}
}

// Upsert reconciles one fact under the given platform label.
//
// When the fact carries an EAN it is first matched against the internal
// product catalog and, on a hit, the fact is stamped with the internal
// product id; a miss is reported via UnmatchedEAN, never as an error.
//
// The write itself is a single conditional statement keyed by the unique
// (platform, external_id, location) index, so a concurrent or retried
// insert for the same identity cannot duplicate a row. The preceding keyed
// read only classifies the outcome as insert vs update.
func (r *InventoryRepository) Upsert(ctx context.Context, fact *models.InventoryFact, platform string) (UpsertResult, error) {
	var result UpsertResult

	if fact.EAN != "" {
		var product models.Product
		err := r.db.WithContext(ctx).
			Where("ean = ? OR barcode = ?", fact.EAN, fact.EAN).
			First(&product).Error
		switch {
		case err == nil:
			id := product.ID
			fact.InternalProductID = &id
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.UnmatchedEAN = true
			r.logger.Warn("No internal product for EAN",
				zap.String("ean", fact.EAN),
				zap.String("sku", fact.SKU))
		default:
			return result, fmt.Errorf("product lookup failed for EAN %s: %w", fact.EAN, err)
		}
	}

	externalID := fact.ExternalID()

	var existing models.EcommerceInventory
	err := r.db.WithContext(ctx).
		Select("id").
		Where("platform = ? AND external_id = ? AND location = ?", platform, externalID, fact.Location).
		First(&existing).Error
	switch {
	case err == nil:
		result.Existed = true
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fresh row
	default:
		return result, fmt.Errorf("existence check failed for %s/%s: %w", platform, externalID, err)
	}

	now := time.Now().UTC()
	row := models.EcommerceInventory{
		Platform:          platform,
		ExternalID:        externalID,
		Location:          fact.Location,
		SKU:               fact.SKU,
		EAN:               fact.EAN,
		ExternalProductID: fact.ProductID,
		ExternalVariantID: fact.VariantID,
		InventoryItemID:   fact.InventoryItemID,
		ProductID:         fact.InternalProductID,
		Available:         fact.Available,
		Incoming:          fact.Incoming,
		Reserved:          fact.Reserved,
		Damaged:           fact.Damaged,
		OnHand:            fact.OnHand,
		Price:             fact.Price,
		CompareAtPrice:    fact.CompareAtPrice,
		CreatedAt:         now,
		CreatedBy:         SystemActor,
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}, {Name: "external_id"}, {Name: "location"}},
		DoUpdates: clause.Assignments(map[string]any{
			"sku":                 fact.SKU,
			"ean":                 fact.EAN,
			"external_product_id": fact.ProductID,
			"external_variant_id": fact.VariantID,
			"inventory_item_id":   fact.InventoryItemID,
			"product_id":          fact.InternalProductID,
			"available":           fact.Available,
			"incoming":            fact.Incoming,
			"reserved":            fact.Reserved,
			"damaged":             fact.Damaged,
			"on_hand":             fact.OnHand,
			"price":               fact.Price,
			"compare_at_price":    fact.CompareAtPrice,
			"modified_at":         now,
			"modified_by":         SystemActor,
		}),
	}).Create(&row)
	if res.Error != nil {
		return result, fmt.Errorf("inventory upsert failed for %s/%s: %w", platform, externalID, res.Error)
	}

	result.Updated = res.RowsAffected > 0
	return result, nil
}
