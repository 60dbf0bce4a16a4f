package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds server configuration
type Config struct {
	Port          string
	OpenAIKey     string
	LocalLLMURL   string // base URL of an OpenAI-compatible local server; empty disables
	LocalLLMModel string
	ProviderMode  string // "procedural", "openai" or "local"
	LogSinkURL    string // remote log sink endpoint; empty disables the HTTP post
	DataDir       string
	CSVPath       string
	RoundSeconds  int
	CommentCount  int
	MinDisplay    time.Duration // loading screen minimum before comments appear
	FlagsPath     string
}

// DefaultConfig returns the kiosk defaults used when an env var is unset.
func DefaultConfig() Config {
	return Config{
		Port:          "8080",
		ProviderMode:  "procedural",
		LocalLLMModel: "llama3",
		DataDir:       "data",
		CSVPath:       "data/game_log.csv",
		RoundSeconds:  60,
		CommentCount:  20,
		MinDisplay:    2 * time.Second,
		FlagsPath:     "data/feature_flags.json",
	}
}

// ConfigFromEnv builds the config from environment variables on top of the
// defaults. Call godotenv.Load first so a local .env is honored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("LOCAL_LLM_URL"); v != "" {
		cfg.LocalLLMURL = v
	}
	if v := os.Getenv("LOCAL_LLM_MODEL"); v != "" {
		cfg.LocalLLMModel = v
	}
	if v := os.Getenv("COMMENT_PROVIDER"); v != "" {
		cfg.ProviderMode = v
	}
	if v := os.Getenv("LOG_SINK_URL"); v != "" {
		cfg.LogSinkURL = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CSV_PATH"); v != "" {
		cfg.CSVPath = v
	}
	if v := os.Getenv("ROUND_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RoundSeconds = n
		}
	}
	if v := os.Getenv("COMMENT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CommentCount = n
		}
	}
	if v := os.Getenv("MIN_DISPLAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MinDisplay = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("FEATURE_FLAGS_PATH"); v != "" {
		cfg.FlagsPath = v
	}

	return cfg
}
