package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/personality"
)

// LLM generates bot comments through a hosted chat model. Human fillers
// still come from the local template pool so only the bot voice depends on
// the network.
type LLM struct {
	llm llms.LLM
	gen *comments.Generator
}

// NewLLM creates an LLM-backed provider.
func NewLLM(apiKey string, gen *comments.Generator) (*LLM, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel("gpt-4o-mini"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider LLM: %v", err)
	}

	return &LLM{llm: llm, gen: gen}, nil
}

// NewLLMWithClient wires an existing model, for tests.
func NewLLMWithClient(llm llms.LLM, gen *comments.Generator) *LLM {
	return &LLM{llm: llm, gen: gen}
}

// Name implements CommentProvider.
func (l *LLM) Name() string { return "llm" }

// Generate implements CommentProvider.
func (l *LLM) Generate(ctx context.Context, cfg personality.BotConfig, count int) ([]comments.Comment, error) {
	if count <= 0 {
		return []comments.Comment{}, nil
	}

	botCount := comments.BotCount(count)
	prompt := buildPrompt(cfg, botCount)

	completion, err := l.llm.Call(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("comment generation failed: %v", err)
	}

	texts, err := ParseBotComments(completion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated comments: %v", err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("model returned no comments")
	}

	entries := make([]comments.BatchEntry, 0, count)
	for i := 0; i < botCount; i++ {
		entries = append(entries, comments.BatchEntry{
			Text:  texts[i%len(texts)],
			IsBot: true,
		})
	}
	for _, text := range comments.HumanFillerTexts(cfg.Topic, count-botCount) {
		entries = append(entries, comments.BatchEntry{Text: text})
	}

	return l.gen.ComposeBatch(cfg.Platform.String(), entries), nil
}

// buildPrompt turns the personality configuration into model instructions.
// The model sees trait descriptions, not raw slider numbers.
func buildPrompt(cfg personality.BotConfig, botCount int) string {
	var traits []string
	st := cfg.Style
	if personality.Dominant(st.Sarcasm) {
		traits = append(traits, "heavily sarcastic")
	}
	if personality.Dominant(st.Dismissiveness) {
		traits = append(traits, "dismissive of other viewpoints")
	}
	if personality.Dominant(st.Logic) {
		traits = append(traits, "argues from facts and structure")
	}
	if personality.Dominant(st.EmotionalIntensity) {
		traits = append(traits, "emotionally intense, uses emojis")
	}
	if personality.Dominant(st.DramaticFlair) {
		traits = append(traits, "dramatic, uses capitalization for emphasis")
	}
	if personality.Dominant(st.MemeStyle) {
		traits = append(traits, "writes in internet meme formats")
	}
	if personality.Dominant(st.PseudoIntellectual) {
		traits = append(traits, "pseudo-intellectual, name-drops academic jargon")
	}
	if personality.Dominant(st.PostLength) {
		traits = append(traits, "keeps comments very short")
	}
	if len(traits) == 0 {
		traits = append(traits, "plain and neutral")
	}

	return fmt.Sprintf(`Write %d social media comments from a bot account arguing about "%s".
The bot's stance: "%s"
The bot's writing style: %s.

Each comment must read like a real social media comment, 1-3 sentences.

Your response MUST ONLY be a valid JSON object with the following structure. Dont write the word json, just output a correct json-formatted object, starting with a { symbol
    "bot_comments": ["<comment 1>", "<comment 2>", ...]
}`, botCount, cfg.Topic, cfg.Stance, strings.Join(traits, ", "))
}

// ParseBotComments extracts comment texts from a model response. Accepts
// the {"bot_comments": [...]} JSON shape, with newline-delimited plain text
// as a tolerant fallback for misbehaving models.
func ParseBotComments(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")
	raw = strings.TrimPrefix(raw, "json")
	raw = strings.TrimSpace(raw)

	var payload struct {
		BotComments []string `json:"bot_comments"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return nonEmpty(payload.BotComments), nil
	}

	// Newline-delimited fallback. A leading brace means malformed JSON
	// rather than plain text, which callers should know about.
	if strings.HasPrefix(raw, "{") {
		return nil, fmt.Errorf("malformed JSON response: %s", truncateString(raw, 120))
	}

	return nonEmpty(strings.Split(raw, "\n")), nil
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateString(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
