// Package shopify implements the Shopify inventory synchronization feature.
//
// It extracts inventory and pricing facts from the Shopify admin GraphQL
// API and reconciles them into the internal inventory table, recording a
// control row and per-item log entries for every run.
//
// # Components
//
//   - client: paginated, rate-limited, retrying extraction client plus the
//     pure fact mapper
//   - store: reconciliation upsert and run/log repositories
//   - sync: the run orchestrator tying extraction, reconciliation and
//     bookkeeping together
//   - Handler: HTTP trigger and status endpoints
//   - Loader: registers the feature with the application
//
// # HTTP Endpoints
//
//   - POST /sync/full-inventory : trigger a full inventory sync
//   - POST /sync/daily-inventory : trigger an incremental sync (previous UTC day)
//   - POST /sync/price-update : trigger a price update sync
//   - GET  /sync/status : recent run summaries
package shopify
