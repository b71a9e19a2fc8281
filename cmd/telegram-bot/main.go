package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-organizer/internal/app"
	"recipe-organizer/internal/clipper"
	"recipe-organizer/internal/config"
	"recipe-organizer/internal/database"
	"recipe-organizer/internal/llm"
	"recipe-organizer/internal/metrics"
	"recipe-organizer/internal/recipe"
	"recipe-organizer/internal/shoppinglist"
	"recipe-organizer/internal/storage"
	"recipe-organizer/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	listRepo := shoppinglist.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	recipeStore, err := storage.NewRecipeStore(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to initialize recipe export store: %v", err)
	}

	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
	}
	recipeClipper := clipper.NewClipper(textGen)

	application := app.NewApp(
		recipeClipper,
		recipeStore,
		metricsStore,
		cfg,
		db,
		recipeRepo,
		listRepo,
	)

	bot, err := telegram.NewBot(cfg, application, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
