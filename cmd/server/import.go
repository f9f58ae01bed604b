package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/h4ks-com/expense-tracker/internal/config"
	"github.com/h4ks-com/expense-tracker/internal/database"
	"github.com/h4ks-com/expense-tracker/internal/models"
	"github.com/h4ks-com/expense-tracker/internal/repository"
	"github.com/h4ks-com/expense-tracker/internal/services"
	"github.com/spf13/cobra"
)

type ExpenseImport struct {
	Amount          models.Amount `json:"amount"`
	TransactionDate models.Date   `json:"transaction_date"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
}

type importOptions struct {
	DatabaseURL string
	File        string
	Email       string
	Strict      bool
}

type importResult struct {
	Imported int
	Skipped  int
}

var importOpts importOptions

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import expenses from JSON file",
	Long: `Import expenses for one user from a JSON file.

Expected JSON format:
[
  {"amount": 12.50, "transaction_date": "2024-05-01", "category": "food", "description": "lunch"},
  {"amount": "3,20", "transaction_date": "2024-05-02", "category": "transport", "description": "bus"}
]

A document downloaded from GET /api/transactions/export is accepted as well.

By default, entries with missing fields are skipped.
Use --strict to fail on the first invalid entry instead. Entries imported
before a failure are kept; store errors always stop the import.`,
	Example: `  expense-tracker import -f expenses.json --email a@x.com
  expense-tracker import --file expenses.json --email a@x.com --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		opts := importOpts
		if opts.DatabaseURL == "" {
			opts.DatabaseURL = cfg.Database.URL
		}

		result, err := runImport(cmd.Context(), opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Import complete: %d imported, %d skipped\n", result.Imported, result.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOpts.File, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().StringVar(&importOpts.Email, "email", "", "Email of the owning user (required)")
	importCmd.Flags().BoolVar(&importOpts.Strict, "strict", false, "Fail on any invalid entry")
	importCmd.Flags().StringVar(&importOpts.DatabaseURL, "database-url", "", "Database URL (defaults to DATABASE_URL)")
	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("email")
}

func runImport(ctx context.Context, opts importOptions) (importResult, error) {
	var result importResult

	f, err := os.Open(opts.File)
	if err != nil {
		return result, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	entries, err := decodeImport(f)
	if err != nil {
		return result, err
	}

	db, err := database.Connect(opts.DatabaseURL)
	if err != nil {
		return result, err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return result, err
	}

	owner, err := repository.NewUserRepository(db).FindByEmail(ctx, opts.Email)
	if err != nil {
		return result, fmt.Errorf("failed to look up user: %w", err)
	}
	if owner == nil {
		return result, fmt.Errorf("no user with email %s", opts.Email)
	}

	expenseService := services.NewExpenseService(repository.NewExpenseRepository(db))

	slog.Info("starting import", "entries", len(entries), "file", opts.File, "user_id", owner.ID)

	for i, e := range entries {
		_, err := expenseService.AddExpense(ctx, owner.ID, services.ExpenseInput{
			Amount:          e.Amount,
			TransactionDate: e.TransactionDate,
			Category:        e.Category,
			Description:     e.Description,
		})
		if err != nil {
			if opts.Strict || !errors.Is(err, services.ErrValidation) {
				return result, fmt.Errorf("import failed for entry %d: %w", i, err)
			}
			slog.Warn("skipped entry", "index", i, "error", err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// decodeImport reads either a bare array of entries or a document produced by
// GET /api/transactions/export.
func decodeImport(r io.Reader) ([]ExpenseImport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var export struct {
			Expenses []ExpenseImport `json:"expenses"`
		}
		if err := json.Unmarshal(trimmed, &export); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return export.Expenses, nil
	}

	var entries []ExpenseImport
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return entries, nil
}
