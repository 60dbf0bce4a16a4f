package provider

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/personality"
)

// Local generates bot comments through a local OpenAI-compatible inference
// server (llama.cpp, ollama and friends). Same prompt and response contract
// as the hosted provider, different transport.
type Local struct {
	client *openai.Client
	model  string
	gen    *comments.Generator
}

// NewLocal creates a provider pointed at baseURL, e.g.
// "http://127.0.0.1:8080/v1". The API key may be a dummy value for servers
// that don't check it.
func NewLocal(baseURL, apiKey, model string, gen *comments.Generator) (*Local, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("local inference server URL is required")
	}
	if model == "" {
		model = "local"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Local{
		client: openai.NewClientWithConfig(config),
		model:  model,
		gen:    gen,
	}, nil
}

// Name implements CommentProvider.
func (l *Local) Name() string { return "local" }

// Generate implements CommentProvider.
func (l *Local) Generate(ctx context.Context, cfg personality.BotConfig, count int) ([]comments.Comment, error) {
	if count <= 0 {
		return []comments.Comment{}, nil
	}

	botCount := comments.BotCount(count)

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(cfg, botCount),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("local inference request failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("local inference returned no choices")
	}

	texts, err := ParseBotComments(resp.Choices[0].Message.Content)
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
