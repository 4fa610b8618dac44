package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpserver "chat-core/infrastructure/http/server"
	"chat-core/internal"
	"chat-core/observability"
	"chat-core/services"
	"chat-core/state"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so deferred cleanup always executes before
// the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. State core & services
	chatState := state.New()
	stats := observability.NewStatsManager(log)

	chatService := services.NewChatService(chatState, stats)
	groupService := services.NewGroupService(chatState, stats)
	callService := services.NewCallService(chatState, stats)
	signalService := services.NewSignalService(chatState, stats)

	go func() {
		if err := stats.Run(ctx, config.StatsInterval); err != nil && ctx.Err() == nil {
			log.Error("Stats reporter stopped", "err", err)
		}
	}()

	// 3. HTTP transport
	chatHandler := httpserver.NewChatHandler(chatService, config.MaxContentLength)
	router := httpserver.NewRouter(
		log,
		chatHandler,
		httpserver.NewGroupHandler(groupService, chatHandler),
		httpserver.NewCallHandler(callService),
		httpserver.NewSignalHandler(signalService),
		stats,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Chat server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// 4. Graceful shutdown
	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	log.Info("Server stopped", "uptime_stats", stats.Snapshot())
	return nil
}
