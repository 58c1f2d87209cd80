// Package store provides an in-memory record store with validated CRUD
// operations and pluggable persistent backends.
//
// A record carries a name (the lookup key), a positive age and an ordered
// list of scores in [0, 100]. Records only enter a store through a
// validating factory, so a stored record always satisfies its invariants.
// Lookup scans records in insertion order and matches names
// case-insensitively, returning the first hit.
//
// # Backends
//
//   - [Memory] - process-local, guarded by a coarse RWMutex. The default.
//   - [Bolt] - bbolt file store, insertion order kept via sequence keys.
//   - [Dynamo] - DynamoDB table with a numeric sort key and optimistic
//     locking on updates.
//
// All backends implement [Store] and share identical semantics; choose by
// lifetime (process, file, table).
//
// # Errors
//
// The package defines two recoverable error kinds:
//
//   - [ValidationError] - a candidate record violated a field invariant;
//     the store is unchanged.
//   - [ErrNotFound] - no record matches the requested name.
//
// The DynamoDB backend additionally reports [ErrConcurrentModification]
// when an optimistic lock fails.
package store
