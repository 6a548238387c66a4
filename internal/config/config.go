// Package config loads the application configuration from environment
// variables.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
)

// Config holds every configurable parameter of the application.
type Config struct {
	TelegramToken string

	MongoURI string
	MongoDB  string

	OpenAIAPIKey string
	OpenAIModel  string

	GoogleAPIKey   string
	SearchEngineID string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AdminAddr   string
	AdminSecret string

	DownloadDir string
}

// Load reads the configuration from environment variables. Missing keys
// that only disable a feature produce a warning; missing keys the bot
// cannot run without return an error.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "gembot"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getenv("OPENAI_MODEL", "gpt-4o-mini"),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		SearchEngineID: os.Getenv("GOOGLE_SEARCH_CX"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AdminAddr:      getenv("ADMIN_ADDR", ":8080"),
		AdminSecret:    os.Getenv("ADMIN_SECRET"),
		DownloadDir:    getenv("DOWNLOAD_DIR", "downloads"),
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Warning: invalid REDIS_DB %q: %v. Using 0.", raw, err)
		} else {
			cfg.RedisDB = db
		}
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if cfg.GoogleAPIKey == "" || cfg.SearchEngineID == "" {
		log.Println("Warning: GOOGLE_API_KEY or GOOGLE_SEARCH_CX is not set. /websearch will find no results.")
	}
	if cfg.AdminSecret == "" {
		log.Println("Warning: ADMIN_SECRET is not set. The operator API is disabled.")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
