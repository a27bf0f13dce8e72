// Package sqlite provides the embedded SQLite implementations of the storage
// interfaces defined in internal/store, together with the schema manager that
// brings a database file of any earlier shape up to the current one.
//
// Connections are opened through a dedicated driver registration that installs
// a Unicode-aware case-insensitive collation (UNICODE_NOCASE) and a casefold()
// SQL function on every connection. Stored text is never normalized; folding
// happens at query time only.
package sqlite
