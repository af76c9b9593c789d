package main

import (
	"fmt"

	"github.com/kubev2v/profit-planner/internal/service"
	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:     "import FILE",
	Short:   "Replace the stored sales with a CSV or XLSX dataset",
	Example: "profit-api import data/financial_sample.xlsx",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer teardown()

		db, err := store.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := migrations.MigrateStore(db, cfg.Database.Dialect(), cfg.Service.MigrationFolder); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		created, err := service.NewDashboardService(s).ImportDataset(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("importing dataset: %w", err)
		}
		zap.S().Infow("dataset imported", "path", args[0], "records", created)

		return nil
	},
}
