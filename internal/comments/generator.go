package comments

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/neo/botspotter_backend/internal/personality"
	"github.com/neo/botspotter_backend/internal/types"
)

const (
	// DefaultBatchSize is the comment count of a standard round.
	DefaultBatchSize = 20

	// BotRatio is the fraction of a generated batch authored by the bot.
	BotRatio = 0.4

	// compressionLimit is the character budget beyond which short-mode
	// comments drop their opener and closer.
	compressionLimit = 80

	// jitterRange is the maximum per-trait perturbation applied to each
	// bot comment in a batch so repeated comments don't read identically.
	jitterRange = 10
)

// Generator renders bot comments and assembles mixed comment batches. All
// randomness flows through the injected source so tests can pin a seed and
// assert exact output.
type Generator struct {
	rng *rand.Rand
}

// lockedSource serializes draws so one Generator can back concurrently
// loading rounds. Same approach as math/rand's global source.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewGenerator creates a generator seeded with the given value, safe for
// use from concurrent round loads.
func NewGenerator(seed int64) *Generator {
	src := rand.NewSource(seed).(rand.Source64)
	return &Generator{rng: rand.New(&lockedSource{src: src})}
}

// NewGeneratorWithRand creates a generator around an existing random
// source. The source is used as-is; the caller owns its synchronization.
func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// pick returns a uniformly random element of the pool.
func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// emojiRun builds a run of ceil(intensity/35) random emojis.
func (g *Generator) emojiRun(intensity int) string {
	count := (intensity + 34) / 35
	var b strings.Builder
	for i := 0; i < count; i++ {
		b.WriteString(g.pick(emojiPool))
	}
	return b.String()
}

// GenerateBotComment renders one bot comment from the opinion and style
// configuration. Empty topic or opinion still produce (degenerate) text.
func (g *Generator) GenerateBotComment(topic, opinion string, op personality.PersonalityConfig, st personality.StyleConfig) string {
	op = op.Normalize()
	st = st.Normalize()

	ctx := &renderContext{
		topic:      topic,
		opinion:    opinion,
		stanceWord: stanceWord(op),
		op:         op,
		st:         st,
		flags:      flagsFor(op, st),
	}

	var parts []string
	if opener, ok := firstMatch(openerRules, ctx.flags); ok {
		parts = append(parts, opener.render(g, ctx))
	}

	body, _ := firstMatch(bodyRules, ctx.flags)
	bodyText := body.render(g, ctx)
	parts = append(parts, bodyText)

	if closer, ok := firstMatch(closerRules, ctx.flags); ok {
		parts = append(parts, closer.render(g, ctx))
	}

	text := strings.Join(parts, " ")

	// Short-mode compression: keep only the opinion-bearing body, or the
	// fixed meme form when meme style is also dominant.
	if ctx.flags.short && len(text) > compressionLimit {
		if ctx.flags.meme {
			return shortMemeRendering(opinion)
		}
		return bodyText
	}

	return text
}

// BotCount returns how many comments of a batch of the given size are
// bot-authored.
func BotCount(total int) int {
	return int(float64(total) * BotRatio)
}

// GenerateComments produces a full shuffled batch of count comments: 40%
// bot-rendered with per-comment style jitter, the rest drawn round-robin
// from the human filler templates. IDs are unique within the batch and
// stable for guess bookkeeping.
func (g *Generator) GenerateComments(topic, opinion, styleLabel string, count int, op personality.PersonalityConfig, st personality.StyleConfig) []Comment {
	if count <= 0 {
		return []Comment{}
	}

	botCount := BotCount(count)
	humanCount := count - botCount

	names := g.shuffled(usernames)
	times := g.shuffled(timestamps)

	batch := make([]Comment, 0, count)

	for i := 0; i < humanCount; i++ {
		template := humanTemplates[i%len(humanTemplates)]
		batch = append(batch, Comment{
			ID:        qualifyID(styleLabel, "human", i),
			Text:      strings.ReplaceAll(template, "{topic}", topic),
			Username:  names[len(batch)%len(names)],
			Timestamp: times[len(batch)%len(times)],
			Source:    types.SourceGeneratedHuman,
			IsBotted:  false,
		})
	}

	for i := 0; i < botCount; i++ {
		jittered := g.jitterStyle(st)
		batch = append(batch, Comment{
			ID:        qualifyID(styleLabel, "bot", i),
			Text:      g.GenerateBotComment(topic, opinion, op, jittered),
			Username:  names[len(batch)%len(names)],
			Timestamp: times[len(batch)%len(times)],
			Source:    types.SourceGeneratedBot,
			IsBotted:  true,
		})
	}

	// Shuffle so position carries no hint about authorship.
	g.rng.Shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})

	return batch
}

// jitterStyle perturbs every trait by up to ±jitterRange, clamped.
func (g *Generator) jitterStyle(st personality.StyleConfig) personality.StyleConfig {
	j := func(v int) int {
		return personality.Clamp(v + g.rng.Intn(2*jitterRange+1) - jitterRange)
	}
	return personality.StyleConfig{
		Sarcasm:            j(st.Sarcasm),
		Dismissiveness:     j(st.Dismissiveness),
		Logic:              j(st.Logic),
		BulletPoints:       j(st.BulletPoints),
		EmotionalIntensity: j(st.EmotionalIntensity),
		DramaticFlair:      j(st.DramaticFlair),
		PostLength:         j(st.PostLength),
		MemeStyle:          j(st.MemeStyle),
		PseudoIntellectual: j(st.PseudoIntellectual),
		Jargon:             j(st.Jargon),
		Supportiveness:     j(st.Supportiveness),
		Agreeableness:      j(st.Agreeableness),
	}
}

// shuffled returns a shuffled copy of the pool, leaving the pool untouched.
func (g *Generator) shuffled(pool []string) []string {
	out := make([]string, len(pool))
	copy(out, pool)
	g.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func qualifyID(styleLabel, kind string, i int) string {
	if styleLabel != "" {
		return fmt.Sprintf("%s-%s-%d", styleLabel, kind, i)
	}
	return fmt.Sprintf("%s-%d", kind, i)
}

// HumanTemplateCount exposes the filler pool size for batch sizing checks.
func HumanTemplateCount() int {
	return len(humanTemplates)
}

// BatchEntry is a bare comment text plus its authorship, as returned by
// network comment providers before decoration.
type BatchEntry struct {
	Text  string
	IsBot bool
}

// ComposeBatch decorates provider-supplied texts into a full shuffled
// comment batch: ids, usernames and timestamps assigned the same way
// GenerateComments does it.
func (g *Generator) ComposeBatch(styleLabel string, entries []BatchEntry) []Comment {
	if len(entries) == 0 {
		return []Comment{}
	}

	names := g.shuffled(usernames)
	times := g.shuffled(timestamps)

	batch := make([]Comment, 0, len(entries))
	botIdx, humanIdx := 0, 0
	for _, e := range entries {
		var id string
		var source types.CommentSource
		if e.IsBot {
			id = qualifyID(styleLabel, "bot", botIdx)
			source = types.SourceGeneratedBot
			botIdx++
		} else {
			id = qualifyID(styleLabel, "human", humanIdx)
			source = types.SourceGeneratedHuman
			humanIdx++
		}
		batch = append(batch, Comment{
			ID:        id,
			Text:      e.Text,
			Username:  names[len(batch)%len(names)],
			Timestamp: times[len(batch)%len(times)],
			Source:    source,
			IsBotted:  e.IsBot,
		})
	}

	g.rng.Shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})

	return batch
}

// HumanFillerTexts returns n filler texts drawn round-robin from the
// template pool with the topic substituted.
func HumanFillerTexts(topic string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		template := humanTemplates[i%len(humanTemplates)]
		out = append(out, strings.ReplaceAll(template, "{topic}", topic))
	}
	return out
}
