// Package messages implements message ingestion and duplicate detection.
//
// Every observed chat message is normalized, hashed (SHA-256) and stored.
// A message whose hash was already seen in the same chat inside the
// configured duplicate window is flagged as a duplicate, linked to the
// first occurrence, and raised as an alert through the Alerter interface
// (implemented by the alerts feature).
//
// # HTTP Endpoints
//
//   - POST /api/messages       : ingest a message, returns the duplicate verdict
//   - GET  /api/messages/stats : counters over the message store
//
// # Retention
//
// Prune removes messages older than a cutoff; the 'prune' CLI command runs it
// with the duplicate window as the retention horizon.
package messages
