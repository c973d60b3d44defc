// Package client implements the Shopify admin GraphQL extraction client.
//
// It turns the remote cursor-paginated products query into a flat slice of
// inventory facts for one store and one sync flavor:
//
//   - FullInventory: quantity breakdown and location per variant, one fact
//     per (variant, location) pair
//   - IncrementalInventory: same shape, filtered server-side to variants
//     updated within a UTC window
//   - Prices: identifiers and price fields only, one fact per variant
//
// # Transport discipline
//
// Each page request retries transient transport faults, 5xx responses and
// HTTP 429 with exponential backoff, capped at three attempts total. A
// successful response carrying a GraphQL errors list is a hard failure and
// is never retried. After each consumed page the client pauses a fixed
// interval before requesting the next one.
//
// Cancellation is advisory: it is checked between pages, and a cancelled
// extraction returns the facts collected so far.
package client
