package provider

import (
	"context"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/logging"
	"github.com/neo/botspotter_backend/internal/personality"
)

// CommentProvider produces a round's comment batch from a bot
// configuration. Implementations may be the in-process procedural renderer
// or a network-backed text generator.
type CommentProvider interface {
	// Generate returns count comments mixing bot and human filler text.
	Generate(ctx context.Context, cfg personality.BotConfig, count int) ([]comments.Comment, error)

	// Name identifies the provider in logs.
	Name() string
}

// Procedural renders comments locally through the rule-table engine. It is
// synchronous and cannot fail.
type Procedural struct {
	gen *comments.Generator
}

// NewProcedural creates a procedural provider around a generator.
func NewProcedural(gen *comments.Generator) *Procedural {
	return &Procedural{gen: gen}
}

// Name implements CommentProvider.
func (p *Procedural) Name() string { return "procedural" }

// Generate implements CommentProvider.
func (p *Procedural) Generate(_ context.Context, cfg personality.BotConfig, count int) ([]comments.Comment, error) {
	return p.gen.GenerateComments(cfg.Topic, cfg.Stance, cfg.Platform.String(), count, cfg.Opinion, cfg.Style), nil
}

// WithFallback wraps a provider so generation can never fail the round: on
// any error the built-in fallback comment pool fills the bot slots and the
// human fillers come from the template pool. The returned batch is never
// empty for count > 0.
type WithFallback struct {
	inner CommentProvider
	gen   *comments.Generator
}

// NewWithFallback wraps the given provider.
func NewWithFallback(inner CommentProvider, gen *comments.Generator) *WithFallback {
	return &WithFallback{inner: inner, gen: gen}
}

// Name implements CommentProvider.
func (w *WithFallback) Name() string { return w.inner.Name() + "+fallback" }

// Generate implements CommentProvider. The error return is always nil.
func (w *WithFallback) Generate(ctx context.Context, cfg personality.BotConfig, count int) ([]comments.Comment, error) {
	batch, err := w.inner.Generate(ctx, cfg, count)
	if err == nil && len(batch) > 0 {
		return batch, nil
	}

	if err != nil {
		logging.LogProviderEvent("provider_fallback", w.inner.Name(), map[string]interface{}{
			"error": err.Error(),
			"count": count,
		})
	}

	return w.fallbackBatch(cfg, count), nil
}

// fallbackBatch assembles a degraded batch from the fixed pools.
func (w *WithFallback) fallbackBatch(cfg personality.BotConfig, count int) []comments.Comment {
	if count <= 0 {
		count = comments.DefaultBatchSize
	}

	botCount := comments.BotCount(count)
	entries := make([]comments.BatchEntry, 0, count)
	for i := 0; i < botCount; i++ {
		entries = append(entries, comments.BatchEntry{
			Text:  comments.FallbackComments[i%len(comments.FallbackComments)],
			IsBot: true,
		})
	}
	for _, text := range comments.HumanFillerTexts(cfg.Topic, count-botCount) {
		entries = append(entries, comments.BatchEntry{Text: text})
	}

	return w.gen.ComposeBatch(cfg.Platform.String(), entries)
}
