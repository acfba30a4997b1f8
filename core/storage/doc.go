// Package storage provides the object-storage client used to archive catalog
// snapshots.
//
// Every successful full catalog refresh is serialized to JSON and uploaded to
// the configured bucket, giving an audit trail of what the wiki reported and a
// restore source when both the wiki and the database are unavailable.
//
// The Client interface wraps the subset of the Minio API the archive needs so
// feature tests can substitute the testify mock in storage/mocks.
package storage
