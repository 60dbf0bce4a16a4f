package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/neo/botspotter_backend/internal/comments"
	"github.com/neo/botspotter_backend/internal/database"
	"github.com/neo/botspotter_backend/internal/export"
	"github.com/neo/botspotter_backend/internal/logging"
	"github.com/neo/botspotter_backend/internal/provider"
	"github.com/neo/botspotter_backend/internal/scoring"
	"github.com/neo/botspotter_backend/internal/server"
)

func main() {
	// Load environment variables; a missing .env is fine on the kiosk,
	// where everything ships with defaults.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := server.ConfigFromEnv()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.CSVPath), 0755); err != nil {
		log.Fatalf("Failed to create CSV directory: %v", err)
	}

	if err := logging.InitDefaultLogger(logging.Config{
		Level:       logging.INFO,
		Prefix:      "botspotter",
		Colored:     true,
		LogToFile:   true,
		LogFilePath: filepath.Join(cfg.DataDir, "botspotter.log"),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	leaderboard, err := scoring.NewLeaderboard(db)
	if err != nil {
		log.Fatalf("Failed to load leaderboard: %v", err)
	}

	gen := comments.NewGenerator(time.Now().UnixNano())

	var inner provider.CommentProvider
	switch cfg.ProviderMode {
	case "openai":
		if cfg.OpenAIKey == "" {
			log.Fatal("OPENAI_API_KEY is required for the openai provider")
		}
		inner, err = provider.NewLLM(cfg.OpenAIKey, gen)
		if err != nil {
			log.Fatalf("Failed to create OpenAI provider: %v", err)
		}
	case "local":
		if cfg.LocalLLMURL == "" {
			log.Fatal("LOCAL_LLM_URL is required for the local provider")
		}
		inner, err = provider.NewLocal(cfg.LocalLLMURL, cfg.OpenAIKey, cfg.LocalLLMModel, gen)
		if err != nil {
			log.Fatalf("Failed to create local LLM provider: %v", err)
		}
	default:
		inner = provider.NewProcedural(gen)
	}
	prov := provider.NewWithFallback(inner, gen)

	flags, err := server.NewFeatureFlagManager(cfg.FlagsPath)
	if err != nil {
		log.Fatalf("Failed to initialize feature flags: %v", err)
	}

	sinkURL := cfg.LogSinkURL
	if !flags.GetFlags().EnableRemoteLogSink {
		sinkURL = ""
	}
	sink := export.NewSink(sinkURL, export.NewCSVWriter(cfg.CSVPath), db)

	manager := server.NewRoundManager(db, prov, leaderboard, sink, cfg)
	manager.StartPeriodicCleanup(10*time.Minute, time.Hour)

	srv := server.NewServer(manager, flags)
	log.Printf("Starting server on :%s (provider: %s)...", cfg.Port, prov.Name())
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
