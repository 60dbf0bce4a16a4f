package round

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/personality"
)

// State is the round lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StateCompleted State = "completed"
)

// DefaultRemovalDelay is how long a correctly guessed comment stays visible
// before it disappears from the feed. Cosmetic only; counters update the
// moment the guess lands.
const DefaultRemovalDelay = 1500 * time.Millisecond

// PlayerGuess records one write-once guess keyed by comment id.
type PlayerGuess struct {
	Guessed bool `json:"guessed"`
	Correct bool `json:"correct"`
}

// GameResults is the read-only summary emitted exactly once at round end.
type GameResults struct {
	TotalBotted      int  `json:"totalBotted"`
	CorrectGuesses   int  `json:"correctGuesses"`
	IncorrectGuesses int  `json:"incorrectGuesses"`
	MissedBotted     int  `json:"missedBotted"`
	TimeRemaining    int  `json:"timeRemaining"`
	TimerExpired     bool `json:"timerExpired"`
}

// GuessResult is returned to the click handler after each guess attempt.
type GuessResult struct {
	AlreadyGuessed   bool `json:"alreadyGuessed"`
	Correct          bool `json:"correct"`
	CorrectGuesses   int  `json:"correctGuesses"`
	IncorrectGuesses int  `json:"incorrectGuesses"`
	Completed        bool `json:"completed"`
}

// Event is pushed to the round's listener for live clients.
type Event struct {
	Type          string       `json:"type"`
	TimeRemaining int          `json:"timeRemaining,omitempty"`
	CommentID     string       `json:"commentId,omitempty"`
	Correct       bool         `json:"correct,omitempty"`
	Results       *GameResults `json:"results,omitempty"`
}

// Round tracks one play-through: the immutable comment batch, per-comment
// guess state, the countdown, and completion. Each round is a fresh
// instance; nothing is shared with previous rounds.
type Round struct {
	ID     string
	Config personality.BotConfig

	mu           sync.Mutex
	batch        []comments.Comment
	byID         map[string]*comments.Comment
	guesses      map[string]PlayerGuess
	removed      map[string]bool
	correct      int
	incorrect    int
	totalBotted  int
	duration     int
	remaining    int
	state        State
	results      *GameResults
	cancel       context.CancelFunc
	removalDelay time.Duration
	onEvent      func(Event)
}

// New creates an idle round around an immutable comment batch and a
// countdown duration in seconds.
func New(id string, cfg personality.BotConfig, batch []comments.Comment, durationSeconds int) *Round {
	byID := make(map[string]*comments.Comment, len(batch))
	totalBotted := 0
	for i := range batch {
		byID[batch[i].ID] = &batch[i]
		if batch[i].IsBotted {
			totalBotted++
		}
	}

	return &Round{
		ID:           id,
		Config:       cfg,
		batch:        batch,
		byID:         byID,
		guesses:      make(map[string]PlayerGuess, len(batch)),
		removed:      make(map[string]bool),
		totalBotted:  totalBotted,
		duration:     durationSeconds,
		remaining:    durationSeconds,
		state:        StateIdle,
		removalDelay: DefaultRemovalDelay,
	}
}

// SetEventListener registers the live-feed callback. Must be called before
// Start; events fire from the timer goroutine and guess handlers.
func (r *Round) SetEventListener(fn func(Event)) {
	r.mu.Lock()
	r.onEvent = fn
	r.mu.Unlock()
}

// Start activates the round and launches the one-second countdown. The
// context cancels the timer when the player restarts mid-round.
func (r *Round) Start(ctx context.Context) {
	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return
	}
	r.state = StateActive
	ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	go r.runTimer(ctx)
}

func (r *Round) runTimer(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.state != StateActive {
				r.mu.Unlock()
				return
			}
			r.remaining--
			if r.remaining <= 0 {
				r.remaining = 0
				fire := r.completeLocked(true)
				r.mu.Unlock()
				fire()
				return
			}
			remaining := r.remaining
			emit := r.onEvent
			r.mu.Unlock()

			if emit != nil {
				emit(Event{Type: "tick", TimeRemaining: remaining})
			}
		}
	}
}

// Guess records the player's click on a comment. Idempotent: a comment that
// was already guessed, or already removed from the visible set, is a no-op
// and never changes the counters.
func (r *Round) Guess(commentID string) (GuessResult, error) {
	r.mu.Lock()

	if r.state != StateActive {
		defer r.mu.Unlock()
		return GuessResult{}, fmt.Errorf("round %s is not active", r.ID)
	}

	comment, exists := r.byID[commentID]
	if !exists {
		defer r.mu.Unlock()
		return GuessResult{}, fmt.Errorf("unknown comment id: %s", commentID)
	}

	if prior, guessed := r.guesses[commentID]; guessed || r.removed[commentID] {
		result := GuessResult{
			AlreadyGuessed:   true,
			Correct:          prior.Correct,
			CorrectGuesses:   r.correct,
			IncorrectGuesses: r.incorrect,
		}
		r.mu.Unlock()
		return result, nil
	}

	correct := comment.IsBotted
	r.guesses[commentID] = PlayerGuess{Guessed: true, Correct: correct}
	if correct {
		r.correct++
		// The visible removal is delayed for the reveal animation; the
		// logical found count above is already updated.
		id := commentID
		time.AfterFunc(r.removalDelay, func() {
			r.mu.Lock()
			r.removed[id] = true
			r.mu.Unlock()
		})
	} else {
		r.incorrect++
	}

	result := GuessResult{
		Correct:          correct,
		CorrectGuesses:   r.correct,
		IncorrectGuesses: r.incorrect,
	}

	// All bots found ends the round early and must beat the timer to the
	// completion transition.
	var fire func()
	if r.correct == r.totalBotted && r.totalBotted > 0 {
		fire = r.completeLocked(false)
		result.Completed = true
	}
	emit := r.onEvent
	r.mu.Unlock()

	if emit != nil {
		emit(Event{Type: "guess", CommentID: commentID, Correct: correct})
	}
	if fire != nil {
		fire()
	}

	return result, nil
}

// completeLocked transitions to Completed and builds the single GameResults
// value. Caller holds the mutex; the returned func emits the completion
// event and must be called after unlocking. Safe to call from both
// terminal triggers: the first one wins, the second is a no-op.
func (r *Round) completeLocked(timerExpired bool) func() {
	if r.state == StateCompleted {
		return func() {}
	}
	r.state = StateCompleted

	r.results = &GameResults{
		TotalBotted:      r.totalBotted,
		CorrectGuesses:   r.correct,
		IncorrectGuesses: r.incorrect,
		MissedBotted:     r.totalBotted - r.correct,
		TimeRemaining:    r.remaining,
		TimerExpired:     timerExpired,
	}

	if r.cancel != nil {
		r.cancel()
	}

	results := *r.results
	emit := r.onEvent
	return func() {
		if emit != nil {
			emit(Event{Type: "completed", Results: &results})
		}
	}
}

// Cancel aborts the round without producing results, for mid-round
// restarts. Timers stop; a canceled round never completes.
func (r *Round) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateCompleted {
		return
	}
	r.state = StateCompleted
	if r.cancel != nil {
		r.cancel()
	}
}

// State returns the current lifecycle state.
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// TimeRemaining returns the countdown in seconds.
func (r *Round) TimeRemaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// TimeUsed returns elapsed seconds since the round started.
func (r *Round) TimeUsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duration - r.remaining
}

// TotalBotted returns how many comments in the batch are bot-authored.
func (r *Round) TotalBotted() int {
	return r.totalBotted
}

// Results returns the GameResults and true once the round has completed
// with results. A canceled round returns false forever.
func (r *Round) Results() (GameResults, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		return GameResults{}, false
	}
	return *r.results, true
}

// VisibleComment is a feed entry with guess state but, while the round is
// active, without the ground-truth label.
type VisibleComment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
	Guessed   bool   `json:"guessed"`
	Correct   bool   `json:"correct,omitempty"`
	Removed   bool   `json:"removed"`
	IsBotted  *bool  `json:"isBotted,omitempty"`
}

// VisibleComments returns the feed for clients. The IsBotted ground truth
// is only attached once the round has completed.
func (r *Round) VisibleComments() []VisibleComment {
	r.mu.Lock()
	defer r.mu.Unlock()

	revealed := r.state == StateCompleted
	out := make([]VisibleComment, 0, len(r.batch))
	for i := range r.batch {
		c := r.batch[i]
		guess := r.guesses[c.ID]
		vc := VisibleComment{
			ID:        c.ID,
			Text:      c.Text,
			Username:  c.Username,
			Timestamp: c.Timestamp,
			Guessed:   guess.Guessed,
			Correct:   guess.Correct,
			Removed:   r.removed[c.ID],
		}
		if revealed {
			isBotted := c.IsBotted
			vc.IsBotted = &isBotted
		}
		out = append(out, vc)
	}
	return out
}
