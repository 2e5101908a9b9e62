package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/api/message"
	"github.com/SevaSansthan/wa-responder/internal/classify"
	"github.com/SevaSansthan/wa-responder/internal/config"
	"github.com/SevaSansthan/wa-responder/internal/faq"
	"github.com/SevaSansthan/wa-responder/internal/forwarder"
	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/loaders"
	"github.com/SevaSansthan/wa-responder/internal/reply"
	"github.com/SevaSansthan/wa-responder/internal/routes"
	"github.com/SevaSansthan/wa-responder/internal/utils"
	"github.com/SevaSansthan/wa-responder/internal/vision"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Warning: Error loading .env file", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup := utils.InitLogger(cfg)
	defer cleanup()

	utils.Zlog.Info("Starting application",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.ServerPort))

	db, err := loaders.NewPostgresClient(cfg.DatabaseURL, cfg.WorkerCount)
	if err != nil {
		utils.Zlog.Error("Failed to create database client", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			utils.Zlog.Error("Error closing database connection", zap.Error(err))
		}
	}()

	provider := buildProvider(cfg)
	if provider == nil {
		utils.Zlog.Warn("No LLM provider configured, replies degrade to fallbacks")
	}

	faqStore := faq.LoadStore(cfg.FAQDBPath)

	replica := forwarder.NewReplica(cfg.ReplicaURL)
	defer replica.Stop()

	classifier := classify.NewClassifier(provider)
	generators := reply.NewGenerators(provider)
	answerer := faq.NewAnswerer(faqStore, provider)
	dispatcher := reply.NewDispatcher(generators, answerer)
	pipeline := vision.NewPipeline(utils.NewImageDownloader(), provider)
	svc := message.NewService(db, classifier, dispatcher, pipeline, replica)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	routes.SetupRoutes(router, routes.Deps{
		Cfg:      cfg,
		DB:       db,
		Provider: provider,
		FAQStore: faqStore,
		Service:  svc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	utils.Zlog.Info("Server exited")
}

// buildProvider selects the LLM backend. A misconfigured provider is not
// fatal: every call site has a documented fallback.
func buildProvider(cfg *config.Config) llm.Provider {
	switch cfg.LLMProvider {
	case "openai":
		p, err := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			utils.Zlog.Error("OpenAI provider initialization failed", zap.Error(err))
			return nil
		}
		return p
	default:
		if len(cfg.GeminiAPIKeys) == 0 {
			utils.Zlog.Error("No Gemini API keys configured")
			return nil
		}
		temperature := float32(0.4)
		maxTokens := 1024
		p, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKeys, cfg.GeminiModel, &temperature, &maxTokens)
		if err != nil {
			utils.Zlog.Error("Gemini provider initialization failed", zap.Error(err))
			return nil
		}
		return p
	}
}
