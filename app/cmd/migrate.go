package cmd

import (
	"github.com/restobook/pkg/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and seed default settings and templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		if err := database.Seed(db); err != nil {
			return err
		}

		log.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")
		return nil
	},
}
