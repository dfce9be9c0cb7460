package main

import (
	"github.com/deppfellow/world-api/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.loggerService.Shutdown()

		return database.Migrate(cmd.Context(), &a.log, a.cfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
