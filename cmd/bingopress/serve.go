package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogomix/bingopress/internal/config"
	"github.com/diogomix/bingopress/internal/live"
	"github.com/diogomix/bingopress/internal/service"
	"github.com/diogomix/bingopress/pkg/events"
	"github.com/diogomix/bingopress/pkg/kvstore"
	"github.com/diogomix/bingopress/pkg/logger"
)

var serveFlags struct {
	configPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for generation, simulation and live games",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if serveFlags.configPath != "" {
			loaded, err := config.Load(serveFlags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
		}

		index, err := kvstore.NewBadgerStore(cfg.Storage.Badger.Directory, cfg.Storage.Badger.Prefix, kvstore.JSON)
		if err != nil {
			return fmt.Errorf("open index store: %w", err)
		}
		defer index.Close()

		var emitter events.Emitter = events.NopEmitter{}
		if cfg.NATS.URL != "" {
			nc, err := events.GetNATSConnection(cfg.NATS.URL)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer nc.Close()
			emitter = events.NewEmitter(nc, cfg.NATS.Subject)
			logger.Info("Live events enabled", "url", cfg.NATS.URL, "subject", cfg.NATS.Subject)
		}

		handler := &Handler{
			Config: cfg,
			Generator: &service.Generator{
				OutputRoot: cfg.Storage.OutputRoot,
				Index:      index,
			},
			Simulator: &service.Simulator{
				OutputRoot:  cfg.Storage.SimulationsRoot,
				LayoutsRoot: cfg.Storage.OutputRoot,
				MaxNumber:   cfg.Game.MaxNumber,
				Index:       index,
			},
			Registry: live.NewRegistry(emitter),
		}

		mux := http.NewServeMux()
		handler.Register(mux)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler: mux,
		}

		go func() {
			logger.Info("HTTP server listening", "port", cfg.HTTP.Port, "environment", cfg.Environment)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("HTTP server failed", "err", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("HTTP shutdown failed", "err", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.configPath, "config", "", "path to YAML config file")
}
