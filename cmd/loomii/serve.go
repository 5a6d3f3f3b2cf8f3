package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"loomii/internal/index"
	"loomii/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Builds the insight index and serves the chat, search, and
conversation endpoints. Chat responses stream plain text followed by a
metadata frame carrying structured cards.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	var watcher *index.CorpusWatcher
	if cfg.Corpus.Watch && cfg.Corpus.Path != "" {
		watcher, err = index.NewCorpusWatcher(cfg.Corpus.Path, application.index)
		if err != nil {
			logger.Warn("corpus watching disabled", zap.Error(err))
		} else if err := watcher.Start(ctx); err != nil {
			logger.Warn("corpus watching disabled", zap.Error(err))
			watcher = nil
		}
	}
	if watcher != nil {
		defer watcher.Stop()
	}

	h := server.NewHandler(application.agent, application.index.Len)
	srv := server.New(cfg.Server.Addr, h)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	return nil
}
