package main

import (
	"fmt"

	"github.com/h4ks-com/expense-tracker/internal/config"
	"github.com/h4ks-com/expense-tracker/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		db, err := database.Connect(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}
