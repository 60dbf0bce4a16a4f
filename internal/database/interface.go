package database

import (
	"github.com/neo/botspotter_backend/internal/export"
	"github.com/neo/botspotter_backend/internal/scoring"
)

// DatabaseInterface defines the interface for database operations
type DatabaseInterface interface {
	Close() error

	// Leaderboard
	SaveScoreEntry(entry scoring.ScoreEntry) error
	LoadScoreEntries() ([]scoring.ScoreEntry, error)

	// Game logs (local backup of the log sink record)
	SaveGameLog(rec export.Record) error
	ListGameLogs(limit int) ([]export.Record, error)
}
