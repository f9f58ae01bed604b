package repository

import (
	"context"

	"github.com/h4ks-com/expense-tracker/internal/models"
	"gorm.io/gorm"
)

// ExpenseRepository scopes every query by owner. There is no way to read or
// write an expense without naming its user.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *ExpenseRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) History(ctx context.Context, userID uint) ([]models.HistoryEntry, error) {
	entries := []models.HistoryEntry{}
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("transaction_date AS date, category, amount, description").
		Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Order("id DESC").
		Scan(&entries).Error
	return entries, err
}

// Update overwrites the mutable fields of an owned expense and reports how
// many rows matched.
func (r *ExpenseRepository) Update(ctx context.Context, id, userID uint, fields models.Expense) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"amount":           fields.Amount,
			"transaction_date": fields.TransactionDate,
			"category":         fields.Category,
			"description":      fields.Description,
		})
	return result.RowsAffected, result.Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{})
	return result.RowsAffected, result.Error
}
