package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camden-git/articlesbackend/config"
	"github.com/camden-git/articlesbackend/database"
	"github.com/camden-git/articlesbackend/handlers"
	"github.com/camden-git/articlesbackend/logging"
	"github.com/camden-git/articlesbackend/services"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	bootLogger := logging.Setup(os.Getenv("LOG_LEVEL"))
	if err != nil {
		bootLogger.Info("no .env file loaded", "err", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DatabasePath, database.Options{Logger: logger, DebugSQL: cfg.DebugSQL})
	if err != nil {
		logger.Error("failed to initialize database", "err", err)
		os.Exit(1)
	}
	defer database.Close(db)

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		err = serve(ctx, cfg, logger, handlers.NewRouter(cfg, db, logger))
	case "seed":
		err = services.Seed(ctx, db, services.NewArticleWriter(db, cfg.RegionIDPolicy))
	default:
		err = fmt.Errorf("unknown command %q (expected serve or seed)", command)
	}
	if err != nil {
		logger.Error("command failed", "command", command, "err", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, handler http.Handler) error {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     logging.StdLogger(logger, slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "database", cfg.DatabasePath, "region_id_policy", cfg.RegionIDPolicy)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
