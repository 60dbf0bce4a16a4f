package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neo/botspotter_backend/internal/export"
	"github.com/neo/botspotter_backend/internal/scoring"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL,
	score INTEGER NOT NULL,
	time INTEGER NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS game_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TIMESTAMP NOT NULL,
	player_code TEXT NOT NULL,
	score INTEGER NOT NULL,
	won INTEGER NOT NULL,
	time_used INTEGER NOT NULL,
	topic TEXT NOT NULL,
	stance TEXT NOT NULL,
	friendly INTEGER, aggressive INTEGER,
	logical INTEGER, illogical INTEGER,
	humor INTEGER, serious INTEGER,
	sarcasm INTEGER, direct INTEGER,
	open_minded INTEGER, closed_minded INTEGER,
	minimal INTEGER, verbose INTEGER,
	emoji_amount INTEGER,
	bots_found INTEGER NOT NULL,
	humans_misidentified INTEGER NOT NULL,
	total_bots INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
CREATE INDEX IF NOT EXISTS idx_game_logs_date ON game_logs(date);
`

// Database wraps the kiosk's sqlite store: leaderboard scores and the
// durable local backup of round logs.
type Database struct {
	db *sql.DB
}

var _ DatabaseInterface = (*Database)(nil)

// New creates a new database connection and initializes the schema.
func New(dataDir string) (*Database, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "botspotter.db")
	return open(dbPath)
}

// NewInMemory creates an in-memory database for tests.
func NewInMemory() (*Database, error) {
	return open(":memory:")
}

func open(dsn string) (*Database, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// SaveScoreEntry appends one leaderboard row. Implements scoring.ScoreStore.
func (d *Database) SaveScoreEntry(entry scoring.ScoreEntry) error {
	query := `INSERT INTO scores (code, score, time) VALUES (?, ?, ?)`
	if _, err := d.db.Exec(query, entry.Code, entry.Score, entry.Time); err != nil {
		return fmt.Errorf("failed to save score entry: %v", err)
	}
	return nil
}

// LoadScoreEntries returns all leaderboard rows in insertion order; the
// leaderboard does its own ranking. Implements scoring.ScoreStore.
func (d *Database) LoadScoreEntries() ([]scoring.ScoreEntry, error) {
	rows, err := d.db.Query(`SELECT code, score, time FROM scores ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load score entries: %v", err)
	}
	defer rows.Close()

	var entries []scoring.ScoreEntry
	for rows.Next() {
		var e scoring.ScoreEntry
		if err := rows.Scan(&e.Code, &e.Score, &e.Time); err != nil {
			return nil, fmt.Errorf("failed to scan score entry: %v", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// SaveGameLog writes the durable local backup of a round's log record.
func (d *Database) SaveGameLog(rec export.Record) error {
	query := `INSERT INTO game_logs (
		date, player_code, score, won, time_used, topic, stance,
		friendly, aggressive, logical, illogical, humor, serious,
		sarcasm, direct, open_minded, closed_minded, minimal, verbose,
		emoji_amount, bots_found, humans_misidentified, total_bots
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	won := 0
	if rec.Won {
		won = 1
	}

	_, err := d.db.Exec(query,
		rec.Date, rec.PlayerCode, rec.Score, won, rec.TimeUsed, rec.Topic, rec.Stance,
		rec.Friendly, rec.Aggressive, rec.Logical, rec.Illogical, rec.Humor, rec.Serious,
		rec.Sarcasm, rec.Direct, rec.OpenMinded, rec.ClosedMinded, rec.Minimal, rec.Verbose,
		rec.EmojiAmount, rec.BotsFound, rec.HumansMisidentified, rec.TotalBots,
	)
	if err != nil {
		return fmt.Errorf("failed to save game log: %v", err)
	}
	return nil
}

// ListGameLogs returns up to limit recent game logs, newest first.
func (d *Database) ListGameLogs(limit int) ([]export.Record, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.db.Query(`SELECT
		date, player_code, score, won, time_used, topic, stance,
		friendly, aggressive, logical, illogical, humor, serious,
		sarcasm, direct, open_minded, closed_minded, minimal, verbose,
		emoji_amount, bots_found, humans_misidentified, total_bots
	FROM game_logs ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list game logs: %v", err)
	}
	defer rows.Close()

	var records []export.Record
	for rows.Next() {
		var rec export.Record
		var won int
		var date time.Time
		if err := rows.Scan(
			&date, &rec.PlayerCode, &rec.Score, &won, &rec.TimeUsed, &rec.Topic, &rec.Stance,
			&rec.Friendly, &rec.Aggressive, &rec.Logical, &rec.Illogical, &rec.Humor, &rec.Serious,
			&rec.Sarcasm, &rec.Direct, &rec.OpenMinded, &rec.ClosedMinded, &rec.Minimal, &rec.Verbose,
			&rec.EmojiAmount, &rec.BotsFound, &rec.HumansMisidentified, &rec.TotalBots,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game log: %v", err)
		}
		rec.Date = date
		rec.Won = won != 0
		records = append(records, rec)
	}

	return records, rows.Err()
}
