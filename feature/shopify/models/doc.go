// Package models defines the data types shared by the shopify feature:
// the transient InventoryFact produced by extraction, the GORM rows for the
// reconciled inventory, the internal product catalog, and the run/log
// bookkeeping tables.
package models
