package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:100" json:"email"`
	Username     string    `gorm:"index;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null;size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	Expenses     []Expense `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
