// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Multi-statement operations (card create/update/delete, dictionary merge)
// are atomic. Stores obtained through WithTx join the caller's transaction
// instead of opening their own.
package store
