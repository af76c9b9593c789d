package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/kubev2v/profit-planner/internal/api_server"
	"github.com/kubev2v/profit-planner/internal/events"
	"github.com/kubev2v/profit-planner/internal/predictor"
	"github.com/kubev2v/profit-planner/internal/service"
	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the profit planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer teardown()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if err := migrations.MigrateStore(db, cfg.Database.Dialect(), cfg.Service.MigrationFolder); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		if cfg.Service.DatasetPath != "" {
			created, err := service.NewDashboardService(store).ImportDataset(ctx, cfg.Service.DatasetPath)
			if err != nil {
				zap.S().Fatalw("importing dataset", "path", cfg.Service.DatasetPath, "error", err)
			}
			zap.S().Infow("dataset imported", "path", cfg.Service.DatasetPath, "records", created)
		}

		p, err := predictor.New(ctx, cfg)
		if err != nil {
			zap.S().Fatalw("initializing predictor", "error", err)
		}

		var eventWriter service.EventWriter
		if cfg.Service.EventsEnabled {
			producer := events.NewEventProducer(events.NewStdoutWriter(os.Stdout), events.WithOutputTopic(cfg.Service.EventsTopic))
			defer func() { _ = producer.Close() }()
			eventWriter = producer
		}

		// the event producer is closed after the API server has drained its in-flight requests
		apiDone := make(chan struct{})
		go func() {
			defer close(apiDone)
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, store, p, eventWriter, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, store, cfg.Service.LogLevel)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("failed to run metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		<-apiDone
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
