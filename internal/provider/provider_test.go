package provider

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider for testing
type MockProvider struct {
	mock.Mock
}

var _ CommentProvider = (*MockProvider)(nil)

func (m *MockProvider) Generate(ctx context.Context, cfg personality.BotConfig, count int) ([]comments.Comment, error) {
	args := m.Called(ctx, cfg, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]comments.Comment), args.Error(1)
}

func (m *MockProvider) Name() string { return "mock" }

func testBotConfig() personality.BotConfig {
	return personality.BotConfig{
		Topic:  "electric cars",
		Stance: "They are the future",
		Opinion: personality.PersonalityConfig{
			StanceStrength: 80,
			Positivity:     70,
			Category:       types.CategoryPro,
			Theme:          types.ThemeEnvironmental,
		},
		Style: personality.NeutralStyle(),
	}
}

func TestProceduralGenerate(t *testing.T) {
	p := NewProcedural(comments.NewGenerator(1))

	batch, err := p.Generate(context.Background(), testBotConfig(), 20)
	require.NoError(t, err)
	require.Len(t, batch, 20)

	bots := 0
	for _, c := range batch {
		if c.IsBotted {
			bots++
		}
	}
	assert.Equal(t, 8, bots)
}

func TestFallbackOnProviderError(t *testing.T) {
	inner := new(MockProvider)
	inner.On("Generate", mock.Anything, mock.Anything, 20).
		Return(nil, fmt.Errorf("network unreachable"))

	w := NewWithFallback(inner, comments.NewGenerator(2))

	batch, err := w.Generate(context.Background(), testBotConfig(), 20)
	require.NoError(t, err, "fallback must never propagate provider errors")
	require.NotEmpty(t, batch)
	assert.Len(t, batch, 20)

	bots := 0
	ids := make(map[string]bool)
	for _, c := range batch {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		if c.IsBotted {
			bots++
			assert.NotEmpty(t, c.Text)
		}
	}
	assert.Equal(t, 8, bots)
	inner.AssertExpectations(t)
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	want := []comments.Comment{{ID: "bot-0", Text: "beep", IsBotted: true}}
	inner := new(MockProvider)
	inner.On("Generate", mock.Anything, mock.Anything, 1).Return(want, nil)

	w := NewWithFallback(inner, comments.NewGenerator(3))
	batch, err := w.Generate(context.Background(), testBotConfig(), 1)
	require.NoError(t, err)
	assert.Equal(t, want, batch)
}

func TestFallbackOnEmptyBatch(t *testing.T) {
	inner := new(MockProvider)
	inner.On("Generate", mock.Anything, mock.Anything, 10).
		Return([]comments.Comment{}, nil)

	w := NewWithFallback(inner, comments.NewGenerator(4))
	batch, err := w.Generate(context.Background(), testBotConfig(), 10)
	require.NoError(t, err)
	assert.NotEmpty(t, batch)
}

func TestParseBotCommentsJSON(t *testing.T) {
	texts, err := ParseBotComments(`{"bot_comments": ["first comment", "second comment"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"first comment", "second comment"}, texts)
}

func TestParseBotCommentsFencedJSON(t *testing.T) {
	raw := "```json\n{\"bot_comments\": [\"only one\"]}\n```"
	texts, err := ParseBotComments(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"only one"}, texts)
}

func TestParseBotCommentsNewlineFallback(t *testing.T) {
	texts, err := ParseBotComments("first line\n\nsecond line\nthird line")
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line", "third line"}, texts)
}

func TestParseBotCommentsMalformedJSON(t *testing.T) {
	_, err := ParseBotComments(`{"bot_comments": ["unterminated`)
	assert.Error(t, err)
}
