// Package store contains the persistence layer of the shopify feature:
// the reconciliation upsert against the internal inventory table and the
// run/log bookkeeping repositories.
//
// Reconciliation identity is the (platform, external id, location) tuple,
// enforced by a unique index so the insert-or-update is a single atomic
// statement. An absent location and an empty location are the same identity
// bucket.
package store
