package server

import (
	"github.com/stretchr/testify/mock"

	"github.com/neo/botspotter_backend/internal/export"
	"github.com/neo/botspotter_backend/internal/scoring"
)

// MockDatabase is a mock implementation of database.DatabaseInterface
type MockDatabase struct {
	mock.Mock
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDatabase) SaveScoreEntry(entry scoring.ScoreEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockDatabase) LoadScoreEntries() ([]scoring.ScoreEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.ScoreEntry), args.Error(1)
}

func (m *MockDatabase) SaveGameLog(rec export.Record) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockDatabase) ListGameLogs(limit int) ([]export.Record, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]export.Record), args.Error(1)
}
