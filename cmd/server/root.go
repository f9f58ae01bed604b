package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expense-tracker",
	Short: "Expense Tracker - personal expense ledger API",
	Long: `Expense Tracker is a personal expense ledger.

It provides a REST API for registering users, logging in with bearer tokens
and managing each user's own expenses.

Run 'expense-tracker serve' to start the server, 'expense-tracker migrate' to
create the schema, 'expense-tracker adduser' to create an account from the
terminal or 'expense-tracker import' to load expenses from a JSON file.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(importCmd)
}
