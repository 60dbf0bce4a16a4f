package comments

import (
	"strings"
	"sync"
	"testing"

	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralOpinion() personality.PersonalityConfig {
	return personality.PersonalityConfig{
		StanceStrength: 50,
		Positivity:     50,
		Category:       types.CategoryPro,
		Theme:          types.ThemeTech,
	}
}

func TestGenerateBotCommentDefaultBody(t *testing.T) {
	g := NewGenerator(1)
	text := g.GenerateBotComment("electric cars", "They are the future", neutralOpinion(), personality.NeutralStyle())

	// Neutral traits: no opener, no closer, plain statement with the
	// opinion verbatim and a trailing period.
	assert.Equal(t, "I support electric cars. They are the future.", text)
}

func TestGenerateBotCommentEmptyInputsStillRender(t *testing.T) {
	g := NewGenerator(2)
	text := g.GenerateBotComment("", "", neutralOpinion(), personality.NeutralStyle())
	assert.NotEmpty(t, text)
}

func TestSarcasticDismissiveOpener(t *testing.T) {
	g := NewGenerator(3)
	st := personality.NeutralStyle()
	st.Sarcasm = 90
	st.Dismissiveness = 90

	text := g.GenerateBotComment("remote work", "It never works", neutralOpinion(), st)

	var found bool
	for _, opener := range mockingOpeners {
		if strings.HasPrefix(text, opener) {
			found = true
		}
	}
	assert.True(t, found, "expected a mocking opener, got: %q", text)
}

func TestEmotionalBodyAppendsEmojiRun(t *testing.T) {
	g := NewGenerator(4)
	st := personality.NeutralStyle()
	st.EmotionalIntensity = 100
	st.DramaticFlair = 100

	text := g.GenerateBotComment("ai", "It changes everything", neutralOpinion(), st)

	// ceil(100/35) = 3 emojis from the pool
	emojiCount := 0
	for _, e := range emojiPool {
		emojiCount += strings.Count(text, e)
	}
	assert.Equal(t, 3, emojiCount, "got: %q", text)
}

func TestEmojiRunScaling(t *testing.T) {
	g := NewGenerator(5)
	cases := map[int]int{1: 1, 35: 1, 36: 2, 70: 2, 71: 3, 100: 3}
	for intensity, count := range cases {
		run := g.emojiRun(intensity)
		total := 0
		for _, e := range emojiPool {
			total += strings.Count(run, e)
		}
		assert.Equal(t, count, total, "intensity %d", intensity)
	}
}

func TestShortModeCompressionKeepsBodyOnly(t *testing.T) {
	g := NewGenerator(6)
	st := personality.NeutralStyle()
	st.PostLength = 90 // short mode
	st.Logic = 90      // forces an analytical opener and logical closer

	text := g.GenerateBotComment("social media regulation",
		"Platforms optimize for outrage and it is making public debate worse",
		neutralOpinion(), st)

	for _, opener := range analyticalOpeners {
		assert.False(t, strings.HasPrefix(text, opener), "opener survived compression: %q", text)
	}
	for _, closer := range logicalClosers {
		assert.False(t, strings.HasSuffix(text, closer), "closer survived compression: %q", text)
	}
	assert.Contains(t, text, "Platforms optimize for outrage")
}

func TestShortMemeModeUsesFixedRendering(t *testing.T) {
	g := NewGenerator(7)
	st := personality.NeutralStyle()
	st.PostLength = 90
	st.MemeStyle = 90
	st.EmotionalIntensity = 90
	st.DramaticFlair = 90

	opinion := "Electric cars are obviously the right choice for basically everyone"
	text := g.GenerateBotComment("electric cars", opinion, neutralOpinion(), st)
	assert.Equal(t, shortMemeRendering(opinion), text)
}

func TestTraitAtThresholdIsNotDominant(t *testing.T) {
	g := NewGenerator(8)
	st := personality.NeutralStyle()
	st.Sarcasm = 60
	st.Dismissiveness = 60

	text := g.GenerateBotComment("ai", "It helps", neutralOpinion(), st)
	assert.Equal(t, "I support ai. It helps.", text)
}

func TestBatchComposition(t *testing.T) {
	g := NewGenerator(9)
	batch := g.GenerateComments("electric cars", "They are the future", "", 20, neutralOpinion(), personality.NeutralStyle())

	require.Len(t, batch, 20)

	bots, humans := 0, 0
	ids := make(map[string]bool)
	for _, c := range batch {
		assert.Equal(t, c.IsBotted, c.Source == types.SourceGeneratedBot)
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		assert.NotEmpty(t, c.Username)
		assert.NotEmpty(t, c.Timestamp)
		if c.IsBotted {
			bots++
		} else {
			humans++
		}
	}
	assert.Equal(t, 8, bots)
	assert.Equal(t, 12, humans)
}

func TestBatchCountZero(t *testing.T) {
	g := NewGenerator(10)
	assert.Empty(t, g.GenerateComments("t", "o", "", 0, neutralOpinion(), personality.NeutralStyle()))
	assert.Empty(t, g.GenerateComments("t", "o", "", -5, neutralOpinion(), personality.NeutralStyle()))
}

func TestBatchHumanTemplatesSubstituteTopic(t *testing.T) {
	g := NewGenerator(11)
	batch := g.GenerateComments("pineapple on pizza", "It rules", "", 10, neutralOpinion(), personality.NeutralStyle())

	for _, c := range batch {
		assert.NotContains(t, c.Text, "{topic}")
	}
}

func TestBatchQualifiedIDs(t *testing.T) {
	g := NewGenerator(12)
	batch := g.GenerateComments("ai", "It helps", "youtube", 5, neutralOpinion(), personality.NeutralStyle())

	for _, c := range batch {
		assert.True(t, strings.HasPrefix(c.ID, "youtube-"), c.ID)
	}
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	first := NewGenerator(42).GenerateComments("ai", "It helps", "", 20, neutralOpinion(), personality.NeutralStyle())
	second := NewGenerator(42).GenerateComments("ai", "It helps", "", 20, neutralOpinion(), personality.NeutralStyle())
	assert.Equal(t, first, second)
}

func TestJitterStaysInRange(t *testing.T) {
	g := NewGenerator(13)
	st := personality.StyleConfig{Sarcasm: 95, Logic: 5, PostLength: 50}

	for i := 0; i < 200; i++ {
		j := g.jitterStyle(st)
		assert.GreaterOrEqual(t, j.Sarcasm, 85)
		assert.LessOrEqual(t, j.Sarcasm, 100)
		assert.GreaterOrEqual(t, j.Logic, 0)
		assert.LessOrEqual(t, j.Logic, 15)
		assert.GreaterOrEqual(t, j.PostLength, 40)
		assert.LessOrEqual(t, j.PostLength, 60)
	}
}

func TestBotCount(t *testing.T) {
	assert.Equal(t, 8, BotCount(20))
	assert.Equal(t, 4, BotCount(10))
	assert.Equal(t, 0, BotCount(1))
	assert.Equal(t, 2, BotCount(5))
}

func TestSharedGeneratorServesConcurrentBatches(t *testing.T) {
	g := NewGenerator(1)
	op := neutralOpinion()
	st := personality.NeutralStyle()

	// One generator backs every round, and batches for overlapping rounds
	// are built on separate goroutines.
	const workers = 4
	batches := make([][]Comment, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			batches[i] = g.GenerateComments("electric cars", "They are the future", "", DefaultBatchSize, op, st)
		}(i)
	}
	wg.Wait()

	for _, batch := range batches {
		require.Len(t, batch, DefaultBatchSize)
		seen := make(map[string]bool, len(batch))
		bots := 0
		for _, c := range batch {
			assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
			seen[c.ID] = true
			assert.NotEmpty(t, c.Text)
			if c.IsBotted {
				bots++
			}
		}
		assert.Equal(t, BotCount(DefaultBatchSize), bots)
	}
}
