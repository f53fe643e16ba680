package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/server"
	"ai-workspace-be/internal/tracer"
	"ai-workspace-be/pkg/llm/factory"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()
	shutdownTracer := tracer.InitTracer(cfg.Telemetry)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Record Store
	store, err := bootstrap.NewRecordStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Unable to open %s record store: %v", cfg.Store.Driver, err)
	}

	// 3. LLM Provider
	provider, err := factory.NewLLMProvider(factory.Config{
		Provider:  cfg.Ai.Provider,
		APIKey:    cfg.Ai.APIKey,
		BaseURL:   cfg.Ai.BaseURL,
		FastModel: cfg.Ai.FastModel,
		ProModel:  cfg.Ai.ProModel,
		Timeout:   cfg.Ai.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": provider.Name(),
	})

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, store, provider, sysLogger)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// 5. Start Background Services
	if err := container.Start(ctx); err != nil {
		log.Fatalf("Failed to start background services: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("SERVER", "Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	sysLogger.Info("SERVER", "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("SERVER", "HTTP shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := container.Close(); err != nil {
		sysLogger.Error("SERVER", "Failed to close container", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("SERVER", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
