package comments

import (
	"testing"

	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStanceWord(t *testing.T) {
	cases := []struct {
		category   types.Category
		positivity int
		expected   string
	}{
		{types.CategoryPro, 90, "strongly support"},
		{types.CategoryAgree, 90, "strongly support"},
		{types.CategorySupport, 30, "support"},
		{types.CategoryPro, 60, "support"}, // threshold is strict
		{types.CategoryCon, 90, "strongly oppose"},
		{types.CategoryOppose, 10, "oppose"},
		{types.CategoryDisagree, 50, "oppose"},
	}

	for _, tc := range cases {
		op := personality.PersonalityConfig{
			Category:   tc.category,
			Positivity: tc.positivity,
		}
		assert.Equal(t, tc.expected, stanceWord(op), "%s/%d", tc.category, tc.positivity)
	}
}

func TestOpenerPriorityOrder(t *testing.T) {
	// All rule predicates true at once: the first table entry must win.
	all := traitFlags{
		sarcastic: true, dismissive: true, logical: true, bulleted: true,
		emotional: true, dramatic: true, short: true, meme: true,
		pseudo: true, jargon: true, supportive: true, agreeable: true,
	}

	r, ok := firstMatch(openerRules, all)
	require.True(t, ok)
	assert.Equal(t, "mocking", r.name)

	// Knock out rules one by one and watch the cascade fall through.
	all.dismissive = false
	r, _ = firstMatch(openerRules, all)
	assert.Equal(t, "exclamatory", r.name)

	all.emotional = false
	r, _ = firstMatch(openerRules, all)
	assert.Equal(t, "minimal", r.name)

	all.meme = false
	r, _ = firstMatch(openerRules, all)
	assert.Equal(t, "academic", r.name)

	all.jargon = false
	r, _ = firstMatch(openerRules, all)
	assert.Equal(t, "enthusiastic", r.name)

	all.supportive = false
	r, _ = firstMatch(openerRules, all)
	assert.Equal(t, "analytical", r.name)

	all.logical = false
	_, ok = firstMatch(openerRules, all)
	assert.False(t, ok, "no opener should match neutral flags")
}

func TestBodyRuleAlwaysMatches(t *testing.T) {
	r, ok := firstMatch(bodyRules, traitFlags{})
	require.True(t, ok)
	assert.Equal(t, "default", r.name)
}

func TestBodyPriorityOrder(t *testing.T) {
	flags := traitFlags{bulleted: true, logical: true, meme: true, sarcastic: true}
	r, _ := firstMatch(bodyRules, flags)
	assert.Equal(t, "bulleted-logical", r.name)

	flags.bulleted = false
	r, _ = firstMatch(bodyRules, flags)
	assert.Equal(t, "meme", r.name)

	flags.meme = false
	r, _ = firstMatch(bodyRules, flags)
	assert.Equal(t, "sarcastic", r.name)
}

func TestCloserPriorityOrder(t *testing.T) {
	flags := traitFlags{dismissive: true, strongStance: true, supportive: true, agreeable: true}
	r, ok := firstMatch(closerRules, flags)
	require.True(t, ok)
	assert.Equal(t, "dismissive", r.name)

	// Dismissive alone without a strong stance doesn't fire.
	flags.strongStance = false
	r, _ = firstMatch(closerRules, flags)
	assert.Equal(t, "supportive", r.name)

	// Logical closer requires low emotion.
	flags = traitFlags{logical: true, emotional: true, dramatic: true}
	r, _ = firstMatch(closerRules, flags)
	assert.Equal(t, "dramatic", r.name)

	_, ok = firstMatch(closerRules, traitFlags{})
	assert.False(t, ok)
}

func TestShortMemeRendering(t *testing.T) {
	assert.Equal(t,
		"cats are better than dogs. that's it. that's the comment.",
		shortMemeRendering("  Cats are better than dogs  "))
}
