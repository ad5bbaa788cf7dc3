package cmd

import (
	"fmt"

	"github.com/ammichelon/dashboard-dinetec/internal/db"
	"github.com/ammichelon/dashboard-dinetec/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the leads/checkins schema if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		sqlDB, err := db.Initialize(cmd.Context(), db.OptsFromConfig(cfg.SQLite))
		if err != nil {
			return fmt.Errorf("initialize db: %w", err)
		}
		defer sqlDB.Close()

		logger.Log.Info("migration complete",
			zap.String("path", cfg.SQLite.Path),
			zap.Strings("tables", db.Tables),
			zap.Strings("indexes", db.Indexes),
		)
		return nil
	},
}
