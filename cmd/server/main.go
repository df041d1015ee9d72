package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/curelink/disha/pkg/ai"
	"github.com/curelink/disha/pkg/cache"
	"github.com/curelink/disha/pkg/chat"
	"github.com/curelink/disha/pkg/config"
	"github.com/curelink/disha/pkg/db"
	"github.com/curelink/disha/pkg/httpapi"
	"github.com/curelink/disha/pkg/memory"
	"github.com/curelink/disha/pkg/metrics"
)

func main() {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		TimeFormat:      time.Kitchen,
	})

	envs, err := config.LoadConfig(true)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Info("Using database path", "path", envs.DBPath)

	store, err := db.NewStore(envs.DBPath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	users, err := cache.NewUserCache(logger)
	if err != nil {
		logger.Fatal("Failed to create user cache", "error", err)
	}
	defer users.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	llm, err := buildLLMClient(logger, envs)
	if err != nil {
		logger.Fatal("Failed to build LLM client", "error", err)
	}

	memories := memory.NewService(store, memory.Config{
		ImportanceThreshold: envs.MemoryImportanceThreshold,
		MaxInContext:        envs.MaxMemoriesInContext,
	}, logger)

	chatService := chat.NewService(logger, store, memories, llm, users, collector, chat.Config{
		MaxConversationHistory: envs.MaxConversationHistory,
	})

	handler := httpapi.NewHandler(logger, chatService, envs.MessagesPerPage)
	wsHandler := httpapi.NewWSHandler(logger, chatService, collector, envs.TypingIndicatorDelay)
	limiter := httpapi.NewRateLimiter(logger, httpapi.DefaultRateLimiterConfig())
	defer limiter.Stop()

	router := httpapi.NewRouter(handler, wsHandler, limiter, registry, envs.CORSOrigin)

	server := &http.Server{
		Addr:              ":" + envs.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", envs.Port, "provider", envs.LLMProvider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

func buildLLMClient(logger *log.Logger, envs *config.Config) (ai.Client, error) {
	switch envs.LLMProvider {
	case "anthropic":
		return ai.NewAnthropicClient(logger, envs.AnthropicAPIKey, envs.LLMModel, envs.MaxContextTokens, envs.MaxResponseTokens), nil
	case "openai":
		return ai.NewOpenAIClient(logger, envs.OpenAIAPIKey, envs.OpenAIBaseURL, envs.LLMModel, envs.MaxContextTokens, envs.MaxResponseTokens), nil
	default:
		return nil, errors.Errorf("unknown LLM provider %q", envs.LLMProvider)
	}
}
