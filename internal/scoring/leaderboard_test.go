package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockScoreStore for testing
type MockScoreStore struct {
	mock.Mock
}

var _ ScoreStore = (*MockScoreStore)(nil)

func (m *MockScoreStore) SaveScoreEntry(entry ScoreEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockScoreStore) LoadScoreEntries() ([]ScoreEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScoreEntry), args.Error(1)
}

func TestLeaderboardOrdering(t *testing.T) {
	lb, err := NewLeaderboard(nil)
	require.NoError(t, err)

	for _, e := range []ScoreEntry{
		{Code: "AAA", Score: 50, Time: 120},
		{Code: "BBB", Score: 10, Time: 60},
		{Code: "CCC", Score: 90, Time: 90},
	} {
		_, err := lb.SaveScore(e)
		require.NoError(t, err)
	}

	scores := lb.GetScores()
	require.Len(t, scores, 3)
	assert.Equal(t, []int{90, 50, 10}, []int{scores[0].Score, scores[1].Score, scores[2].Score})

	assert.Equal(t, 1, lb.GetPlayerRank("CCC"))
	assert.Equal(t, 2, lb.GetPlayerRank("AAA"))
	assert.Equal(t, 3, lb.GetPlayerRank("BBB"))
}

func TestLeaderboardRankForUnknownCode(t *testing.T) {
	lb, err := NewLeaderboard(nil)
	require.NoError(t, err)

	_, err = lb.SaveScore(ScoreEntry{Code: "AAA", Score: 100})
	require.NoError(t, err)

	assert.Equal(t, 2, lb.GetPlayerRank("ZZZ"))
}

func TestLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	lb, err := NewLeaderboard(nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := lb.SaveScore(ScoreEntry{Code: fmt.Sprintf("P%d%d", i, i), Score: 42})
		require.NoError(t, err)
	}

	scores := lb.GetScores()
	for i, e := range scores {
		assert.Equal(t, fmt.Sprintf("P%d%d", i, i), e.Code)
	}
}

func TestLeaderboardLoadsFromStore(t *testing.T) {
	store := new(MockScoreStore)
	store.On("LoadScoreEntries").Return([]ScoreEntry{
		{Code: "LOW", Score: 5},
		{Code: "TOP", Score: 500},
	}, nil)

	lb, err := NewLeaderboard(store)
	require.NoError(t, err)

	scores := lb.GetScores()
	require.Len(t, scores, 2)
	assert.Equal(t, "TOP", scores[0].Code)
	store.AssertExpectations(t)
}

func TestLeaderboardPersistsNewEntries(t *testing.T) {
	store := new(MockScoreStore)
	store.On("LoadScoreEntries").Return([]ScoreEntry{}, nil)
	store.On("SaveScoreEntry", ScoreEntry{Code: "NEW", Score: 77, Time: 30}).Return(nil)

	lb, err := NewLeaderboard(store)
	require.NoError(t, err)

	sorted, err := lb.SaveScore(ScoreEntry{Code: "NEW", Score: 77, Time: 30})
	require.NoError(t, err)
	assert.Len(t, sorted, 1)
	store.AssertExpectations(t)
}

func TestLeaderboardKeepsEntryWhenStoreFails(t *testing.T) {
	store := new(MockScoreStore)
	store.On("LoadScoreEntries").Return([]ScoreEntry{}, nil)
	store.On("SaveScoreEntry", mock.Anything).Return(fmt.Errorf("disk full"))

	lb, err := NewLeaderboard(store)
	require.NoError(t, err)

	sorted, err := lb.SaveScore(ScoreEntry{Code: "AAA", Score: 10})
	assert.Error(t, err)
	assert.Len(t, sorted, 1)
	assert.Equal(t, 1, lb.GetPlayerRank("AAA"))
}
