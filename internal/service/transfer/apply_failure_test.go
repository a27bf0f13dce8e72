package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/vocabcards/internal/domain"
	"github.com/phrazzld/vocabcards/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_RollsBackOnCreateFailure(t *testing.T) {
	t.Parallel()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	diskErr := errors.New("disk I/O error")
	var created []string
	cards := &mocks.MockCardStore{
		ExistsInDictionaryFn: func(context.Context, string, int64) (bool, error) { return false, nil },
		CreateFn: func(_ context.Context, _ int64, in domain.CardInput) (int64, error) {
			if len(created) == 1 {
				return 0, diskErr
			}
			created = append(created, in.Word)
			return int64(len(created)), nil
		},
	}

	svc, err := NewService(db, cards, &mocks.MockDictionaryStore{}, nil)
	require.NoError(t, err)

	report, err := svc.Apply(context.Background(), 3, "cat,кот\ndog,пёс\nbird,птица", domain.DedupByWord)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, diskErr)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "apply", svcErr.Operation)
	assert.Contains(t, err.Error(), "record 2")

	assert.Equal(t, []string{"cat"}, created)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAnalyze_LookupFailure(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("database is locked")
	cards := &mocks.MockCardStore{DefaultError: lookupErr}

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := NewService(db, cards, &mocks.MockDictionaryStore{}, nil)
	require.NoError(t, err)

	_, err = svc.Analyze(context.Background(), 3, "cat,кот", domain.DedupByWord)
	assert.ErrorIs(t, err, lookupErr)
}
