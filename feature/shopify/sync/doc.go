// Package sync implements the run orchestrator for the shopify feature.
//
// A run executes one flavor (full inventory, incremental inventory or price
// update) across every configured store: extraction first, then per-item
// reconciliation, with run bookkeeping throughout. The orchestrator owns
// the error policy: item faults are counted and logged, store-level
// extraction faults abort the remaining stores, and the run row always
// reaches a terminal status.
package sync
