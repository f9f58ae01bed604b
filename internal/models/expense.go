package models

import "time"

type Expense struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Amount          Amount    `gorm:"type:decimal(10,2);not null" json:"amount"`
	TransactionDate Date      `gorm:"type:date;not null;index" json:"transaction_date"`
	Category        string    `gorm:"not null;size:50" json:"category"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HistoryEntry is the projection served by the transaction history view.
type HistoryEntry struct {
	Date        Date   `json:"date"`
	Category    string `json:"category"`
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
}
