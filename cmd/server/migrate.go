package main

import (
	"github.com/spf13/cobra"

	"github.com/rpattn/filedash/internal/db"
)

func newMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configDir)
			if err != nil {
				return err
			}
			return db.RunMigrations(cfg.Database)
		},
	}
}
