package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the internal product catalog, used only for
// secondary-identifier lookups during reconciliation.
type Product struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;size:200"`
	EAN     string `gorm:"column:ean;size:64;index"`
	Barcode string `gorm:"column:barcode;size:64;index"`
}

// TableName overrides the table name for Product.
func (Product) TableName() string {
	return "products"
}

// EcommerceInventory is the reconciled inventory row for one external
// variant at one location. The (platform, external_id, location) tuple is
// enforced unique so the upsert can be a single conditional write.
type EcommerceInventory struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Platform   string `gorm:"column:platform;size:50;not null;uniqueIndex:idx_inventory_identity"`
	ExternalID string `gorm:"column:external_id;size:64;not null;uniqueIndex:idx_inventory_identity"`
	// Location is always stored as a plain string; an absent location is the
	// empty string so null and empty land in the same identity bucket.
	Location string `gorm:"column:location;size:120;not null;default:'';uniqueIndex:idx_inventory_identity"`

	SKU               string  `gorm:"column:sku;size:100"`
	EAN               string  `gorm:"column:ean;size:64"`
	ExternalProductID string  `gorm:"column:external_product_id;size:64"`
	ExternalVariantID string  `gorm:"column:external_variant_id;size:64"`
	InventoryItemID   string  `gorm:"column:inventory_item_id;size:64"`
	ProductID         *uint64 `gorm:"column:product_id"`

	Available int `gorm:"column:available;not null;default:0"`
	Incoming  int `gorm:"column:incoming;not null;default:0"`
	Reserved  int `gorm:"column:reserved;not null;default:0"`
	Damaged   int `gorm:"column:damaged;not null;default:0"`
	OnHand    int `gorm:"column:on_hand;not null;default:0"`

	Price          decimal.NullDecimal `gorm:"column:price;type:decimal(18,2)"`
	CompareAtPrice decimal.NullDecimal `gorm:"column:compare_at_price;type:decimal(18,2)"`

	CreatedAt  time.Time  `gorm:"column:created_at"`
	CreatedBy  string     `gorm:"column:created_by;size:50"`
	ModifiedAt *time.Time `gorm:"column:modified_at"`
	ModifiedBy string     `gorm:"column:modified_by;size:50"`
}

// TableName overrides the table name for EcommerceInventory.
func (EcommerceInventory) TableName() string {
	return "ecommerce_inventory"
}

// SyncRun is the control row tracking one orchestrated run.
type SyncRun struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	SyncType   string     `gorm:"column:sync_type;size:50;not null"`
	StartedAt  time.Time  `gorm:"column:started_at;not null"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
	Status     string     `gorm:"column:status;size:50;not null"`
	Message    string     `gorm:"column:message;size:50"`
	TotalItems int        `gorm:"column:total_items;not null;default:0"`
	Inserted   int        `gorm:"column:inserted;not null;default:0"`
	Updated    int        `gorm:"column:updated;not null;default:0"`
	Failed     int        `gorm:"column:failed;not null;default:0"`
}

// TableName overrides the table name for SyncRun.
func (SyncRun) TableName() string {
	return "sync_runs"
}

// SyncLog is one persisted per-item log line, owned by a run.
// Every string column is bounded to 50 characters; writers truncate.
type SyncLog struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID      uint64    `gorm:"column:run_id;not null;index"`
	LoggedAt   time.Time `gorm:"column:logged_at;not null"`
	Type       string    `gorm:"column:type;size:50;not null"`
	Identifier string    `gorm:"column:identifier;size:50"`
	Message    string    `gorm:"column:message;size:50"`
	Detail     string    `gorm:"column:detail;size:50"`
}

// TableName overrides the table name for SyncLog.
func (SyncLog) TableName() string {
	return "sync_logs"
}
