package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gembot/backend/internal/ai"
	"gembot/backend/internal/api/handler"
	"gembot/backend/internal/config"
	"gembot/backend/internal/extract"
	"gembot/backend/internal/search"
	"gembot/backend/internal/storage"
	"gembot/backend/internal/telegram"
)

func setupDependencies(cfg *config.Config) (*mongo.Database, *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 1. MongoDB
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := client.Database(cfg.MongoDB)

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("MongoDB and Redis connections established.")
	return db, rdb
}

func main() {
	log.Println("Starting GemBot backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 1. Storage (MongoDB + Redis)
	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := s.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// 2. AI responder, file analysis, web search
	responder := ai.NewResponder(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	extractor := extract.New(responder)
	searcher := search.NewClient(cfg.GoogleAPIKey, cfg.SearchEngineID)

	// 3. Telegram bot
	botService, err := telegram.NewBotService(cfg.TelegramToken, s, responder, extractor, searcher, cfg.DownloadDir)
	if err != nil {
		log.Fatalf("Failed to start Telegram bot: %v", err)
	}

	// 4. Read-only operator API, only when a secret is configured
	if cfg.AdminSecret != "" {
		go func() {
			r := gin.Default()
			handler.NewHandler(s, cfg.AdminSecret).Register(r)

			server := &http.Server{
				Addr:           cfg.AdminAddr,
				Handler:        r,
				ReadTimeout:    10 * time.Second,
				WriteTimeout:   10 * time.Second,
				MaxHeaderBytes: 1 << 20,
			}
			log.Printf("Operator API listening on %s", cfg.AdminAddr)
			log.Fatal(server.ListenAndServe())
		}()
	}

	botService.Run()
}
