package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncType identifies which extraction flavor a run performs.
type SyncType string

const (
	SyncTypeFullInventory        SyncType = "FullInventory"
	SyncTypeIncrementalInventory SyncType = "IncrementalInventory"
	SyncTypePriceUpdate          SyncType = "PriceUpdate"
)

// IsValid checks whether the sync type is one of the known flavors.
func (t SyncType) IsValid() bool {
	switch t {
	case SyncTypeFullInventory, SyncTypeIncrementalInventory, SyncTypePriceUpdate:
		return true
	default:
		return false
	}
}

// RunStatus is the lifecycle state of a sync run.
type RunStatus string

const (
	RunStatusInProgress          RunStatus = "InProgress"
	RunStatusCompleted           RunStatus = "Completed"
	RunStatusCompletedWithErrors RunStatus = "CompletedWithErrors"
	RunStatusFailed              RunStatus = "Failed"
)

// LogType classifies a per-item log entry.
type LogType string

const (
	LogTypeSuccess LogType = "Success"
	LogTypeError   LogType = "Error"
	LogTypeWarning LogType = "Warning"
)

// IdentifierUnknown is the placeholder used when a fact carries no usable
// identifier at all.
const IdentifierUnknown = "unknown"

// InventoryFact is one observation of a variant's stock and price at one
// location for one store. It is produced by the extraction client and read
// by reconciliation; reconciliation only ever stamps InternalProductID.
type InventoryFact struct {
	Store           string
	SKU             string
	EAN             string
	ProductID       string // external product id
	VariantID       string // external variant id
	InventoryItemID string
	Location        string

	Available int
	Incoming  int
	Reserved  int
	Damaged   int
	OnHand    int

	Price          decimal.NullDecimal
	CompareAtPrice decimal.NullDecimal

	// InternalProductID is populated when reconciliation matches the EAN
	// against the internal product catalog.
	InternalProductID *uint64
}

// ExternalID returns the identifier used in the storage identity key:
// the variant id when present, otherwise the product id.
func (f *InventoryFact) ExternalID() string {
	if f.VariantID != "" {
		return f.VariantID
	}
	return f.ProductID
}

// Identifier returns the best-effort identifier for log entries:
// SKU, then EAN, then external product id, then a literal placeholder.
func (f *InventoryFact) Identifier() string {
	switch {
	case f.SKU != "":
		return f.SKU
	case f.EAN != "":
		return f.EAN
	case f.ProductID != "":
		return f.ProductID
	default:
		return IdentifierUnknown
	}
}

// LogEntry is one observation about a single item's outcome within a run.
type LogEntry struct {
	Timestamp  time.Time
	Type       LogType
	Identifier string
	Message    string
	Detail     string
}

// SyncCounts aggregates per-item outcomes for a run.
type SyncCounts struct {
	TotalItems int `json:"totalItems"`
	Inserted   int `json:"inserted"`
	Updated    int `json:"updated"`
	Failed     int `json:"failed"`
}

// SyncSummary is the result of one orchestrated run. It mirrors the
// persisted run row and is what callers of the orchestrator receive.
type SyncSummary struct {
	RunID     uint64     `json:"runId"`
	SyncType  SyncType   `json:"syncType"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Status    RunStatus  `json:"status"`
	Message   string     `json:"message,omitempty"`
	Counts    SyncCounts `json:"counts"`
}
