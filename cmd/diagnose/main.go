package main

import (
	"context"
	"time"

	"vc-copilot-be/internal/config"
	"vc-copilot-be/pkg/database"
	pktNats "vc-copilot-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
)

// Quick connectivity check for every external dependency the service needs.
func main() {
	color.Cyan("🚀 VC Copilot dependency diagnostics\n")

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 1. Postgres
	color.Yellow("\n[1] PostgreSQL")
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed: %v", err)
	} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		color.Red("Failed: cannot ping database")
	} else {
		color.Green("OK")

		var hasVector bool
		db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'vector')`).Scan(&hasVector)
		if hasVector {
			color.Green("pgvector extension installed")
		} else {
			color.Red("pgvector extension missing (run cmd/migrate)")
		}
	}

	// 2. Redis
	color.Yellow("\n[2] Redis")
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		color.Red("Failed: %v (websocket fan-out limited to one node)", err)
	} else {
		color.Green("OK")
	}

	// 3. NATS JetStream
	color.Yellow("\n[3] NATS")
	if _, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		color.Red("Failed: %v (analysis notifications disabled)", err)
	} else {
		color.Green("OK")
	}

	// 4. API keys
	color.Yellow("\n[4] API keys")
	if cfg.Keys.OpenRouter == "" {
		color.Red("OPENROUTER_API_KEY not set (chats will return a configuration error)")
	} else {
		color.Green("OpenRouter key present")
	}
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		color.Green("Embedding provider: ollama (%s)", cfg.Ai.OllamaBaseURL)
	case "jina":
		if cfg.Keys.Jina == "" {
			color.Red("JINA_API_KEY not set")
		} else {
			color.Green("Embedding provider: jina")
		}
	default:
		if cfg.Keys.GoogleGemini == "" {
			color.Red("GOOGLE_GEMINI_API_KEY not set")
		} else {
			color.Green("Embedding provider: gemini")
		}
	}

	// 5. SMTP
	color.Yellow("\n[5] SMTP")
	if cfg.SMTP.Host == "" {
		color.Red("SMTP_HOST not set (magic-link sign-in disabled)")
	} else {
		color.Green("SMTP configured (%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	color.Cyan("\nDone.")
}
