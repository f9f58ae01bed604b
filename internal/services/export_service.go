package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/h4ks-com/expense-tracker/internal/models"
)

var ErrInvalidExport = errors.New("invalid export data")

type ExpenseExport struct {
	UserID     uint                `json:"user_id"`
	Username   string              `json:"username"`
	Total      models.Amount       `json:"total" swaggertype:"number"`
	Expenses   []ExpenseExportItem `json:"expenses"`
	ExportedAt time.Time           `json:"exported_at"`
	Signature  string              `json:"signature"`
}

// ExpenseExportItem uses the same field names as the import file format.
type ExpenseExportItem struct {
	ID              uint          `json:"id"`
	Amount          models.Amount `json:"amount" swaggertype:"number"`
	TransactionDate models.Date   `json:"transaction_date" swaggertype:"string"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
}

type ExportService struct {
	expenses   ExpenseStore
	signingKey []byte
	now        func() time.Time
}

func NewExportService(expenses ExpenseStore, signingKey string) *ExportService {
	return &ExportService{
		expenses:   expenses,
		signingKey: []byte(signingKey),
		now:        time.Now,
	}
}

// ExportExpenses returns every expense owned by userID with an HMAC-SHA256
// signature over the rest of the document.
func (s *ExportService) ExportExpenses(ctx context.Context, userID uint, username string) (*ExpenseExport, error) {
	expenses, err := s.expenses.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}

	export := &ExpenseExport{
		UserID:     userID,
		Username:   username,
		Expenses:   make([]ExpenseExportItem, len(expenses)),
		ExportedAt: s.now().UTC().Truncate(time.Second),
	}
	for i, e := range expenses {
		export.Total += e.Amount
		export.Expenses[i] = ExpenseExportItem{
			ID:              e.ID,
			Amount:          e.Amount,
			TransactionDate: e.TransactionDate,
			Category:        e.Category,
			Description:     e.Description,
		}
	}

	signature, err := s.sign(export)
	if err != nil {
		return nil, err
	}
	export.Signature = signature

	return export, nil
}

func (s *ExportService) VerifyExport(export *ExpenseExport) (bool, error) {
	if export.Signature == "" {
		return false, ErrInvalidExport
	}

	computed, err := s.sign(export)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(computed), []byte(export.Signature)), nil
}

func (s *ExportService) sign(export *ExpenseExport) (string, error) {
	unsigned := *export
	unsigned.Signature = ""

	data, err := json.Marshal(unsigned)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	h := hmac.New(sha256.New, s.signingKey)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
