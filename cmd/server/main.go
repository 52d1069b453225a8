package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "filedash",
		Short: "File catalog dashboard with live row filtering",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing config.yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(&configDir),
		newMigrateCmd(&configDir),
		newCreateAdminCmd(&configDir),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
