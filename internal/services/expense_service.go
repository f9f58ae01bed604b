package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/h4ks-com/expense-tracker/internal/models"
)

type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByUserID(ctx context.Context, userID uint) ([]models.Expense, error)
	History(ctx context.Context, userID uint) ([]models.HistoryEntry, error)
	Update(ctx context.Context, id, userID uint, fields models.Expense) (int64, error)
	Delete(ctx context.Context, id, userID uint) (int64, error)
}

type ExpenseInput struct {
	Amount          models.Amount
	TransactionDate models.Date
	Category        string
	Description     string
}

func (in ExpenseInput) validate() error {
	if in.Amount == 0 || in.TransactionDate.IsZero() ||
		strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Description) == "" {
		return ErrValidation
	}
	return nil
}

// ExpenseService is the ownership-scoped ledger. Every method takes the
// authenticated user's id and never touches rows owned by anyone else.
type ExpenseService struct {
	expenses ExpenseStore
}

func NewExpenseService(expenses ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) AddExpense(ctx context.Context, userID uint, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:          userID,
		Amount:          in.Amount,
		TransactionDate: in.TransactionDate,
		Category:        strings.TrimSpace(in.Category),
		Description:     in.Description,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID uint) ([]models.Expense, error) {
	expenses, err := s.expenses.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// ListHistory returns the user's expenses newest first. An empty ledger is
// reported as ErrNotFound rather than an empty slice.
func (s *ExpenseService) ListHistory(ctx context.Context, userID uint) ([]models.HistoryEntry, error) {
	entries, err := s.expenses.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction history: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries, nil
}

// UpdateExpense rewrites an owned expense. A missing id and someone else's id
// both yield ErrNotFound.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID uint, in ExpenseInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	updated, err := s.expenses.Update(ctx, expenseID, userID, models.Expense{
		Amount:          in.Amount,
		TransactionDate: in.TransactionDate,
		Category:        strings.TrimSpace(in.Category),
		Description:     in.Description,
	})
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	if updated == 0 {
		return 0, ErrNotFound
	}
	return updated, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID uint) (int64, error) {
	deleted, err := s.expenses.Delete(ctx, expenseID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	if deleted == 0 {
		return 0, ErrNotFound
	}
	return deleted, nil
}
