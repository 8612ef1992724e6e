package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/tuitonline/Main/internal/config"
	"github.com/tuitonline/Main/internal/database"
	"github.com/tuitonline/Main/internal/deepseek"
	"github.com/tuitonline/Main/internal/repository"
	"github.com/tuitonline/Main/internal/telegram"
)

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	var (
		users    *repository.UserRepository
		messages *repository.MessageRepository
	)

	if cfg.Database.Enabled() {
		pool, err := database.NewPostgresPool(context.Background(), cfg.Database)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer pool.Close()

		if err := database.RunMigrations(context.Background(), pool); err != nil {
			log.Fatalf("Migration error: %v", err)
		}

		users = repository.NewUserRepository(pool)
		messages = repository.NewMessageRepository(pool)
	} else {
		log.Println("No database configured, running without persistence")
	}

	ai := deepseek.NewClient(
		cfg.DeepSeek.BaseURL,
		cfg.DeepSeek.APIKey,
		cfg.DeepSeek.Model,
		cfg.DeepSeek.MaxTokens,
	)

	telegram.RunTelegramBot(cfg, ai, users, messages)
}
