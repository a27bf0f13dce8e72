package testdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/vocabcards/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_IsolatedDatabases(t *testing.T) {
	t.Parallel()

	first := testdb.NewStores(testdb.Open(t))
	second := testdb.NewStores(testdb.Open(t))

	_, dict := testdb.Defaults(t, first)
	testdb.AddCard(t, first.Cards, dict.ID, "cat", "кот", "The cat.")

	_, other := testdb.Defaults(t, second)
	n, err := second.Cards.CountByDictionary(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithTx_RollsBack(t *testing.T) {
	t.Parallel()

	db := testdb.Open(t)
	stores := testdb.NewStores(db)
	_, dict := testdb.Defaults(t, stores)

	testdb.WithTx(t, db.SQL(), func(t *testing.T, tx *sql.Tx) {
		id := testdb.AddCard(t, stores.Cards.WithTx(tx), dict.ID, "dog", "пёс")
		_, err := stores.Cards.WithTx(tx).GetByID(context.Background(), id)
		require.NoError(t, err)
	})

	n, err := stores.Cards.CountByDictionary(context.Background(), dict.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
