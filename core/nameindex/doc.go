// Package nameindex holds the fuzzy name-resolution index.
//
// An Index owns the canonical-name set for one entry type, the alias-to-
// canonical mapping produced by the textnorm alias generator, and the cached
// maximum word count used to bound scan windows. Two indexes of different
// entry types are never merged.
//
// # Reconciliation
//
// Refresh reconciles the index against a freshly fetched catalog snapshot by
// diffing it against the current canonical set: new names are expanded and
// inserted, vanished names have their aliases retracted, and unchanged names
// are left untouched. The snapshot must be complete; a collaborator that could
// only partially fetch its sources must say so via RefreshOptions.Partial,
// which skips removal processing so unfetched names are not treated as
// deleted.
//
// Alias collisions between two canonical names resolve first-registered-wins
// and are logged; a canonical name always owns its own exact spelling.
//
// # Scanning
//
// Scan slides word windows of length 1 up to the maximum canonical word count
// over a title and resolves each window exactly or fuzzily (see core/match),
// keeping the best confidence per canonical name.
//
// Refresh takes the write lock; Scan, Resolve and the lookup helpers share a
// read lock, so scans may run concurrently with each other but never overlap
// a reconciliation.
package nameindex
