package comments

import (
	"fmt"
	"strings"

	"github.com/neo/botspotter_backend/internal/personality"
)

// traitFlags are the dominance booleans driving rule selection. A trait is
// dominant when strictly above personality.DominanceThreshold.
type traitFlags struct {
	sarcastic    bool
	dismissive   bool
	logical      bool
	bulleted     bool
	emotional    bool
	dramatic     bool
	short        bool
	meme         bool
	pseudo       bool
	jargon       bool
	supportive   bool
	agreeable    bool
	strongStance bool
	positive     bool
}

func flagsFor(op personality.PersonalityConfig, st personality.StyleConfig) traitFlags {
	return traitFlags{
		sarcastic:    personality.Dominant(st.Sarcasm),
		dismissive:   personality.Dominant(st.Dismissiveness),
		logical:      personality.Dominant(st.Logic),
		bulleted:     personality.Dominant(st.BulletPoints),
		emotional:    personality.Dominant(st.EmotionalIntensity),
		dramatic:     personality.Dominant(st.DramaticFlair),
		short:        personality.Dominant(st.PostLength),
		meme:         personality.Dominant(st.MemeStyle),
		pseudo:       personality.Dominant(st.PseudoIntellectual),
		jargon:       personality.Dominant(st.Jargon),
		supportive:   personality.Dominant(st.Supportiveness),
		agreeable:    personality.Dominant(st.Agreeableness),
		strongStance: personality.Dominant(op.StanceStrength),
		positive:     personality.Dominant(op.Positivity),
	}
}

// renderContext carries everything a rule needs to produce its fragment.
type renderContext struct {
	topic      string
	opinion    string
	stanceWord string
	op         personality.PersonalityConfig
	st         personality.StyleConfig
	flags      traitFlags
}

// rule pairs a dominance predicate with a fragment renderer. Rules live in
// ordered tables and are evaluated first-match-wins, so the table literal
// itself documents the priority.
type rule struct {
	name    string
	matches func(traitFlags) bool
	render  func(*Generator, *renderContext) string
}

// openerRules, highest priority first:
// sarcastic+dismissive > emotional+dramatic > meme+short > pseudo+jargon >
// supportive+agreeable > logical. No match means no opener.
var openerRules = []rule{
	{
		name:    "mocking",
		matches: func(f traitFlags) bool { return f.sarcastic && f.dismissive },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(mockingOpeners) },
	},
	{
		name:    "exclamatory",
		matches: func(f traitFlags) bool { return f.emotional && f.dramatic },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(exclamatoryOpeners) },
	},
	{
		name:    "minimal",
		matches: func(f traitFlags) bool { return f.meme && f.short },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(minimalOpeners) },
	},
	{
		name:    "academic",
		matches: func(f traitFlags) bool { return f.pseudo && f.jargon },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(academicOpeners) },
	},
	{
		name:    "enthusiastic",
		matches: func(f traitFlags) bool { return f.supportive && f.agreeable },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(enthusiasticOpeners) },
	},
	{
		name:    "analytical",
		matches: func(f traitFlags) bool { return f.logical },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(analyticalOpeners) },
	},
}

// bodyRules, highest priority first. Exactly one always fires because the
// default rule matches everything.
var bodyRules = []rule{
	{
		name:    "bulleted-logical",
		matches: func(f traitFlags) bool { return f.bulleted && f.logical },
		render:  renderBulleted,
	},
	{
		name:    "emotional-dramatic",
		matches: func(f traitFlags) bool { return f.emotional && f.dramatic },
		render:  renderEmotional,
	},
	{
		name:    "meme",
		matches: func(f traitFlags) bool { return f.meme },
		render:  renderMeme,
	},
	{
		name:    "pseudo-intellectual",
		matches: func(f traitFlags) bool { return f.pseudo },
		render:  renderPseudo,
	},
	{
		name:    "sarcastic",
		matches: func(f traitFlags) bool { return f.sarcastic },
		render:  renderSarcastic,
	},
	{
		name:    "default",
		matches: func(traitFlags) bool { return true },
		render:  renderDefault,
	},
}

// closerRules, highest priority first. No match means no closer.
var closerRules = []rule{
	{
		name:    "dismissive",
		matches: func(f traitFlags) bool { return f.dismissive && f.strongStance },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(dismissiveClosers) },
	},
	{
		name:    "supportive",
		matches: func(f traitFlags) bool { return f.supportive && f.agreeable },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(supportiveClosers) },
	},
	{
		name:    "logical",
		matches: func(f traitFlags) bool { return f.logical && !f.emotional },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(logicalClosers) },
	},
	{
		name:    "dramatic",
		matches: func(f traitFlags) bool { return f.dramatic },
		render:  func(g *Generator, _ *renderContext) string { return g.pick(dramaticClosers) },
	},
}

// firstMatch evaluates a rule table in order and returns the first rule
// whose predicate holds.
func firstMatch(rules []rule, flags traitFlags) (rule, bool) {
	for _, r := range rules {
		if r.matches(flags) {
			return r, true
		}
	}
	return rule{}, false
}

// stanceWord derives the verb phrase joining the bot to its topic. High
// positivity intensifies in both directions.
func stanceWord(op personality.PersonalityConfig) string {
	supportive := op.Category.IsSupportive()
	positive := personality.Dominant(op.Positivity)

	switch {
	case supportive && positive:
		return "strongly support"
	case supportive:
		return "support"
	case positive:
		return "strongly oppose"
	default:
		return "oppose"
	}
}

func renderBulleted(g *Generator, ctx *renderContext) string {
	return fmt.Sprintf("I %s %s. Here's why:\n- %s\n- the alternative has failed before\n- the long-term numbers back this up",
		ctx.stanceWord, ctx.topic, ctx.opinion)
}

func renderEmotional(g *Generator, ctx *renderContext) string {
	run := g.emojiRun(ctx.st.EmotionalIntensity)
	return fmt.Sprintf("%s %s", ctx.opinion, run)
}

func renderMeme(g *Generator, ctx *renderContext) string {
	return fmt.Sprintf("%s %s", g.pick(memeIntros), ctx.opinion)
}

func renderPseudo(g *Generator, ctx *renderContext) string {
	return fmt.Sprintf("When one considers the %s of %s, it becomes evident that %s",
		g.pick(jargonNouns), ctx.topic, ctx.opinion)
}

func renderSarcastic(g *Generator, ctx *renderContext) string {
	return fmt.Sprintf("Oh sure, because \"%s\" has totally worked out every single time.", ctx.opinion)
}

func renderDefault(_ *Generator, ctx *renderContext) string {
	body := fmt.Sprintf("I %s %s. %s", ctx.stanceWord, ctx.topic, ctx.opinion)
	if !strings.HasSuffix(body, ".") && !strings.HasSuffix(body, "!") && !strings.HasSuffix(body, "?") {
		body += "."
	}
	return body
}

// shortMemeRendering is the fixed compressed form used when a short,
// meme-styled comment overruns the length budget.
func shortMemeRendering(opinion string) string {
	return fmt.Sprintf("%s. that's it. that's the comment.", strings.ToLower(strings.TrimSpace(opinion)))
}
