// Package testdb provides utilities for tests that need a real database.
//
// Each call to Open creates a fresh SQLite file under the test's temporary
// directory, brings it to the current schema and closes it when the test
// ends, so tests never share state and can run in parallel.
//
// # Basic Usage
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//
//	    db := testdb.Open(t)
//	    stores := testdb.NewStores(db)
//	    _, dict := testdb.Defaults(t, stores)
//
//	    id := testdb.AddCard(t, stores.Cards, dict.ID, "cat", "кот")
//	    // ...
//	}
//
// WithTx runs a function inside a transaction that is always rolled back,
// for tests that want to observe intermediate state without keeping it.
package testdb
