package round

import (
	"context"
	"testing"
	"time"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBatch() []comments.Comment {
	return []comments.Comment{
		{ID: "bot-0", Text: "beep", Source: types.SourceGeneratedBot, IsBotted: true},
		{ID: "bot-1", Text: "boop", Source: types.SourceGeneratedBot, IsBotted: true},
		{ID: "human-0", Text: "hello", Source: types.SourceGeneratedHuman, IsBotted: false},
		{ID: "human-1", Text: "hi there", Source: types.SourceGeneratedHuman, IsBotted: false},
		{ID: "human-2", Text: "what's up", Source: types.SourceGeneratedHuman, IsBotted: false},
	}
}

func testConfig() personality.BotConfig {
	return personality.BotConfig{Topic: "ai", Stance: "in favor"}
}

func startedRound(t *testing.T, durationSeconds int) *Round {
	t.Helper()
	r := New("round-1", testConfig(), testBatch(), durationSeconds)
	r.Start(context.Background())
	require.Equal(t, StateActive, r.State())
	return r
}

func TestRoundStartsIdle(t *testing.T) {
	r := New("round-1", testConfig(), testBatch(), 60)
	assert.Equal(t, StateIdle, r.State())
	assert.Equal(t, 2, r.TotalBotted())
}

func TestGuessCorrectAndIncorrect(t *testing.T) {
	r := startedRound(t, 60)

	res, err := r.Guess("bot-0")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.CorrectGuesses)
	assert.Equal(t, 0, res.IncorrectGuesses)

	res, err = r.Guess("human-0")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.CorrectGuesses)
	assert.Equal(t, 1, res.IncorrectGuesses)
}

func TestGuessIdempotence(t *testing.T) {
	r := startedRound(t, 60)

	first, err := r.Guess("bot-0")
	require.NoError(t, err)
	require.False(t, first.AlreadyGuessed)

	for i := 0; i < 5; i++ {
		res, err := r.Guess("bot-0")
		require.NoError(t, err)
		assert.True(t, res.AlreadyGuessed)
		assert.Equal(t, 1, res.CorrectGuesses)
		assert.Equal(t, 0, res.IncorrectGuesses)
	}

	// Same for a wrong guess
	_, err = r.Guess("human-1")
	require.NoError(t, err)
	res, err := r.Guess("human-1")
	require.NoError(t, err)
	assert.True(t, res.AlreadyGuessed)
	assert.Equal(t, 1, res.IncorrectGuesses)
}

func TestGuessUnknownComment(t *testing.T) {
	r := startedRound(t, 60)
	_, err := r.Guess("nope")
	assert.Error(t, err)
}

func TestAllBotsFoundEndsRoundEarly(t *testing.T) {
	r := startedRound(t, 60)

	_, err := r.Guess("bot-0")
	require.NoError(t, err)

	res, err := r.Guess("bot-1")
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, StateCompleted, r.State())

	results, ok := r.Results()
	require.True(t, ok)
	assert.False(t, results.TimerExpired)
	assert.Equal(t, 2, results.TotalBotted)
	assert.Equal(t, 2, results.CorrectGuesses)
	assert.Equal(t, 0, results.MissedBotted)
}

func TestTimerExpiryEndsRound(t *testing.T) {
	r := startedRound(t, 1)

	require.Eventually(t, func() bool {
		return r.State() == StateCompleted
	}, 3*time.Second, 50*time.Millisecond)

	results, ok := r.Results()
	require.True(t, ok)
	assert.True(t, results.TimerExpired)
	assert.Equal(t, 0, results.TimeRemaining)
	assert.Equal(t, 2, results.MissedBotted)
}

func TestResultsEmittedExactlyOnce(t *testing.T) {
	r := startedRound(t, 1)

	var completions int
	r.SetEventListener(func(e Event) {
		if e.Type == "completed" {
			completions++
		}
	})

	// Find all bots right before the timer would also fire.
	_, err := r.Guess("bot-0")
	require.NoError(t, err)
	_, err = r.Guess("bot-1")
	require.NoError(t, err)

	// Give a stale timer tick every chance to double-complete.
	time.Sleep(2 * time.Second)

	results, ok := r.Results()
	require.True(t, ok)
	assert.False(t, results.TimerExpired, "all-found must beat the timer")
	assert.Equal(t, 1, completions)
}

func TestGuessAfterCompletionFails(t *testing.T) {
	r := startedRound(t, 60)
	_, err := r.Guess("bot-0")
	require.NoError(t, err)
	_, err = r.Guess("bot-1")
	require.NoError(t, err)

	_, err = r.Guess("human-0")
	assert.Error(t, err)
}

func TestCancelProducesNoResults(t *testing.T) {
	r := startedRound(t, 60)
	r.Cancel()

	assert.Equal(t, StateCompleted, r.State())
	_, ok := r.Results()
	assert.False(t, ok)
}

func TestVisibleCommentsHideGroundTruthWhileActive(t *testing.T) {
	r := startedRound(t, 60)

	for _, vc := range r.VisibleComments() {
		assert.Nil(t, vc.IsBotted)
	}

	_, err := r.Guess("bot-0")
	require.NoError(t, err)
	_, err = r.Guess("bot-1")
	require.NoError(t, err)

	for _, vc := range r.VisibleComments() {
		require.NotNil(t, vc.IsBotted)
	}
}

func TestCorrectGuessRemovalIsDelayed(t *testing.T) {
	r := New("round-1", testConfig(), testBatch(), 60)
	r.removalDelay = 50 * time.Millisecond
	r.Start(context.Background())

	res, err := r.Guess("bot-0")
	require.NoError(t, err)
	// Logical count updates immediately
	assert.Equal(t, 1, res.CorrectGuesses)

	visible := func() bool {
		for _, vc := range r.VisibleComments() {
			if vc.ID == "bot-0" {
				return !vc.Removed
			}
		}
		return false
	}
	assert.True(t, visible(), "comment should survive until the delay elapses")

	assert.Eventually(t, func() bool { return !visible() }, time.Second, 10*time.Millisecond)
}

func TestGuessEventsEmitted(t *testing.T) {
	r := New("round-1", testConfig(), testBatch(), 60)
	var events []Event
	r.SetEventListener(func(e Event) { events = append(events, e) })
	r.Start(context.Background())

	_, err := r.Guess("human-0")
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, "guess", events[0].Type)
	assert.Equal(t, "human-0", events[0].CommentID)
	assert.False(t, events[0].Correct)
}
