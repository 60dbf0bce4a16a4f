package scoring

import (
	"fmt"
	"sort"
	"sync"
)

// ScoreEntry is one leaderboard row: a 3-letter player code, the final
// score and the seconds the round took.
type ScoreEntry struct {
	Code  string `json:"code"`
	Score int    `json:"score"`
	Time  int    `json:"time"`
}

// ScoreStore persists leaderboard entries. Implemented by the sqlite
// database; mocked in tests.
type ScoreStore interface {
	SaveScoreEntry(entry ScoreEntry) error
	LoadScoreEntries() ([]ScoreEntry, error)
}

// Leaderboard is the append-only ranked score collection shared across
// rounds. Single writer (the round-end flow); sorted descending by score
// with ties keeping insertion order.
type Leaderboard struct {
	store   ScoreStore
	entries []ScoreEntry
	mu      sync.RWMutex
}

// NewLeaderboard creates a leaderboard, loading any previously persisted
// entries from the store. A nil store keeps the leaderboard memory-only.
func NewLeaderboard(store ScoreStore) (*Leaderboard, error) {
	lb := &Leaderboard{store: store}

	if store != nil {
		entries, err := store.LoadScoreEntries()
		if err != nil {
			return nil, fmt.Errorf("failed to load score entries: %v", err)
		}
		lb.entries = entries
		lb.sortLocked()
	}

	return lb, nil
}

// SaveScore appends an entry, re-sorts, persists, and returns the full
// sorted list for rank lookup. Persistence failure does not lose the
// in-memory entry; the error is returned for the caller to log.
func (l *Leaderboard) SaveScore(entry ScoreEntry) ([]ScoreEntry, error) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.sortLocked()
	sorted := l.snapshotLocked()
	l.mu.Unlock()

	if l.store != nil {
		if err := l.store.SaveScoreEntry(entry); err != nil {
			return sorted, fmt.Errorf("failed to persist score entry: %v", err)
		}
	}

	return sorted, nil
}

// GetScores returns the entries sorted descending by score.
func (l *Leaderboard) GetScores() []ScoreEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// GetPlayerRank returns the 1-based rank of the first entry matching the
// player's code, or len(entries)+1 when the code is absent.
func (l *Leaderboard) GetPlayerRank(code string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i, entry := range l.entries {
		if entry.Code == code {
			return i + 1
		}
	}
	return len(l.entries) + 1
}

// sortLocked stable-sorts descending by score; ties keep insertion order.
func (l *Leaderboard) sortLocked() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Score > l.entries[j].Score
	})
}

func (l *Leaderboard) snapshotLocked() []ScoreEntry {
	out := make([]ScoreEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
