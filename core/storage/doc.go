// Package storage provides the object storage client used to archive
// finished sync-run summaries.
//
// It wraps the MinIO SDK behind a small Client interface so features can be
// tested against mocks (see the mocks subpackage). Archival is best effort:
// the orchestrator logs upload failures but never fails a run because of
// them.
package storage
