package main

import (
	"fmt"

	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer teardown()
		defer zap.S().Info("Db migrated")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := migrations.MigrateStore(db, cfg.Database.Dialect(), cfg.Service.MigrationFolder); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		version, err := migrations.Version(db, cfg.Database.Dialect())
		if err != nil {
			return fmt.Errorf("reading migration version: %w", err)
		}
		zap.S().Infow("db schema is up to date", "version", version)

		return nil
	},
}
