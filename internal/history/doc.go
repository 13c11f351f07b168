// Package history records workflow dispatch runs in a local bbolt database.
//
// Each run is stored under a monotonically increasing sequence number so
// Recent can walk the bucket backwards and return the newest runs first.
// The database is opened with a short lock timeout: a second antika process
// recording at the same moment fails fast instead of blocking.
package history
