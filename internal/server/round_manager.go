package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/database"
	"github.com/neo/botspotter_backend/internal/export"
	"github.com/neo/botspotter_backend/internal/logging"
	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/provider"
	"github.com/neo/botspotter_backend/internal/receipt"
	"github.com/neo/botspotter_backend/internal/round"
	"github.com/neo/botspotter_backend/internal/scoring"
)

// DefaultPlayerCode stands in when the kiosk starts a round before the
// player has typed their initials.
const DefaultPlayerCode = "AAA"

// RoundSummary is the scored outcome of one finished round, built exactly
// once when the round completes.
type RoundSummary struct {
	PlayerCode string            `json:"player_code"`
	Score      int               `json:"score"`
	Won        bool              `json:"won"`
	Accuracy   float64           `json:"accuracy"`
	Grade      scoring.Grade     `json:"grade"`
	Rank       int               `json:"rank"`
	TimeUsed   int               `json:"time_used"`
	Results    round.GameResults `json:"results"`
}

// managedRound tracks one round's full lifetime: the pending load, the
// live round once the batch is ready, and the summary after completion.
type managedRound struct {
	id         string
	config     personality.BotConfig
	playerCode string
	pending    *round.Pending
	cancel     context.CancelFunc
	createdAt  time.Time

	mu      sync.Mutex
	round   *round.Round
	summary *RoundSummary
}

// RoundManager handles the creation, tracking, and cleanup of game rounds
type RoundManager struct {
	db          database.DatabaseInterface
	provider    provider.CommentProvider
	leaderboard *scoring.Leaderboard
	sink        *export.Sink
	cutoffs     scoring.GradeCutoffs

	rounds      map[string]*managedRound
	roundsMutex sync.RWMutex

	roundSeconds int
	commentCount int
	minDisplay   time.Duration

	// onEvent fans round events out to websocket clients; set by the server.
	onEvent func(roundID string, ev round.Event)
}

// NewRoundManager creates a new round manager
func NewRoundManager(db database.DatabaseInterface, prov provider.CommentProvider, leaderboard *scoring.Leaderboard, sink *export.Sink, cfg Config) *RoundManager {
	return &RoundManager{
		db:           db,
		provider:     prov,
		leaderboard:  leaderboard,
		sink:         sink,
		cutoffs:      scoring.DefaultGradeCutoffs(),
		rounds:       make(map[string]*managedRound),
		roundSeconds: cfg.RoundSeconds,
		commentCount: cfg.CommentCount,
		minDisplay:   cfg.MinDisplay,
	}
}

// SetEventListener registers the broadcast callback for live round events.
func (m *RoundManager) SetEventListener(fn func(roundID string, ev round.Event)) {
	m.onEvent = fn
}

// CreateRound kicks off comment generation for a new round and returns its
// id immediately. The round itself starts once both the minimum loading
// delay and the generation have finished.
func (m *RoundManager) CreateRound(cfg personality.BotConfig, playerCode string) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	cfg = cfg.Normalize()

	playerCode = strings.ToUpper(strings.TrimSpace(playerCode))
	if playerCode == "" {
		playerCode = DefaultPlayerCode
	}

	roundID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())

	logging.LogRoundEvent("round_creation_start", roundID, map[string]interface{}{
		"topic":       cfg.Topic,
		"stance":      cfg.Stance,
		"player_code": playerCode,
		"provider":    m.provider.Name(),
	})

	pending := round.Load(ctx, m.minDisplay, func(ctx context.Context) ([]comments.Comment, error) {
		return m.provider.Generate(ctx, cfg, m.commentCount)
	})

	mr := &managedRound{
		id:         roundID,
		config:     cfg,
		playerCode: playerCode,
		pending:    pending,
		cancel:     cancel,
		createdAt:  time.Now(),
	}

	m.roundsMutex.Lock()
	m.rounds[roundID] = mr
	m.roundsMutex.Unlock()

	go m.activateWhenReady(ctx, mr)

	return roundID, nil
}

// activateWhenReady blocks on the pending load and, once the batch is in,
// builds and starts the countdown round. A canceled load leaves the round
// in its pending shell; the cleanup pass reaps it.
func (m *RoundManager) activateWhenReady(ctx context.Context, mr *managedRound) {
	batch, err := mr.pending.Wait(ctx)
	if err != nil {
		logging.LogRoundEvent("round_load_failed", mr.id, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	r := round.New(mr.id, mr.config, batch, m.roundSeconds)
	r.SetEventListener(func(ev round.Event) {
		if ev.Type == "completed" && ev.Results != nil {
			m.finishRound(mr, *ev.Results)
		}
		if m.onEvent != nil {
			m.onEvent(mr.id, ev)
		}
	})

	mr.mu.Lock()
	mr.round = r
	mr.mu.Unlock()

	r.Start(ctx)

	logging.LogRoundEvent("round_started", mr.id, map[string]interface{}{
		"comments":     len(batch),
		"total_botted": r.TotalBotted(),
		"duration":     m.roundSeconds,
	})
}

// finishRound runs the one-shot round-end flow: score, leaderboard save,
// log sink, summary. The completion event fires exactly once so this does
// not need its own guard against the timer/all-found race.
func (m *RoundManager) finishRound(mr *managedRound, results round.GameResults) {
	mr.mu.Lock()
	r := mr.round
	mr.mu.Unlock()

	timeUsed := r.TimeUsed()
	score := scoring.CalculateScore(results.CorrectGuesses, results.IncorrectGuesses, timeUsed)
	accuracy := scoring.Accuracy(results.CorrectGuesses, results.TotalBotted)
	won := results.TotalBotted > 0 && results.CorrectGuesses == results.TotalBotted

	if _, err := m.leaderboard.SaveScore(scoring.ScoreEntry{
		Code:  mr.playerCode,
		Score: score,
		Time:  timeUsed,
	}); err != nil {
		logging.LogScoreEvent("score_persist_failed", mr.id, map[string]interface{}{
			"error": err.Error(),
		})
	}

	summary := &RoundSummary{
		PlayerCode: mr.playerCode,
		Score:      score,
		Won:        won,
		Accuracy:   accuracy,
		Grade:      m.cutoffs.GradeFor(accuracy),
		Rank:       m.leaderboard.GetPlayerRank(mr.playerCode),
		TimeUsed:   timeUsed,
		Results:    results,
	}

	mr.mu.Lock()
	mr.summary = summary
	mr.mu.Unlock()

	m.sink.Log(export.NewRecord(
		mr.playerCode, score, won, timeUsed, mr.config,
		results.CorrectGuesses, results.IncorrectGuesses, results.TotalBotted,
	))

	logging.LogScoreEvent("round_scored", mr.id, map[string]interface{}{
		"player_code": mr.playerCode,
		"score":       score,
		"won":         won,
		"accuracy":    accuracy,
		"grade":       summary.Grade,
		"rank":        summary.Rank,
	})
}

// GetRound retrieves a managed round by ID
func (m *RoundManager) GetRound(roundID string) (*managedRound, bool) {
	m.roundsMutex.RLock()
	defer m.roundsMutex.RUnlock()
	mr, exists := m.rounds[roundID]
	return mr, exists
}

// RestartRound cancels a round mid-play and drops it from the manager. A
// canceled round never produces results or a score.
func (m *RoundManager) RestartRound(roundID string) error {
	m.roundsMutex.Lock()
	mr, exists := m.rounds[roundID]
	if exists {
		delete(m.rounds, roundID)
	}
	m.roundsMutex.Unlock()

	if !exists {
		return fmt.Errorf("round not found: %s", roundID)
	}

	mr.cancel()
	mr.mu.Lock()
	if mr.round != nil {
		mr.round.Cancel()
	}
	mr.mu.Unlock()

	logging.LogRoundEvent("round_restarted", roundID, nil)
	return nil
}

// LoadState reports where the round is in its loading/playing lifecycle.
func (mr *managedRound) LoadState() round.LoadState {
	return mr.pending.State()
}

// Round returns the live round once the batch is ready, or nil while the
// loading screen is still up.
func (mr *managedRound) Round() *round.Round {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return mr.round
}

// Summary returns the scored outcome, or false before completion.
func (mr *managedRound) Summary() (RoundSummary, bool) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if mr.summary == nil {
		return RoundSummary{}, false
	}
	return *mr.summary, true
}

// Receipt renders the printable receipt for a completed round.
func (m *RoundManager) Receipt(roundID string) (string, error) {
	mr, exists := m.GetRound(roundID)
	if !exists {
		return "", fmt.Errorf("round not found: %s", roundID)
	}
	summary, done := mr.Summary()
	if !done {
		return "", fmt.Errorf("round %s has no results yet", roundID)
	}

	r := mr.Round()
	totalComments := len(r.VisibleComments())
	cfg := mr.config
	return receipt.Render(receipt.Data{
		PlayerCode:   summary.PlayerCode,
		CorrectBots:  summary.Results.CorrectGuesses,
		TotalBots:    summary.Results.TotalBotted,
		WrongGuesses: summary.Results.IncorrectGuesses,
		TotalHumans:  totalComments - summary.Results.TotalBotted,
		Score:        summary.Score,
		Config:       &cfg,
	}), nil
}

// RecentLogs returns the newest locally stored game-log records.
func (m *RoundManager) RecentLogs(limit int) ([]export.Record, error) {
	return m.db.ListGameLogs(limit)
}

// StartPeriodicCleanup reaps finished and stale rounds so the kiosk can run
// for days without the map growing.
func (m *RoundManager) StartPeriodicCleanup(interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			m.cleanup(maxAge)
		}
	}()
}

func (m *RoundManager) cleanup(maxAge time.Duration) {
	threshold := time.Now().Add(-maxAge)

	m.roundsMutex.Lock()
	defer m.roundsMutex.Unlock()

	for id, mr := range m.rounds {
		if mr.createdAt.After(threshold) {
			continue
		}
		mr.cancel()
		mr.mu.Lock()
		if mr.round != nil {
			mr.round.Cancel()
		}
		mr.mu.Unlock()
		delete(m.rounds, id)
		logging.LogRoundEvent("round_reaped", id, map[string]interface{}{
			"age": time.Since(mr.createdAt).String(),
		})
	}
}
