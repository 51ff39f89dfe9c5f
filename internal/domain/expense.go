package domain

import "time"

// Expense is a manual ledger entry. A negative Amount records income, which
// nets against expenses rather than revenue.
type Expense struct {
	ID          string    `json:"id" gorm:"primaryKey;type:char(36)"`
	Category    string    `json:"category" gorm:"not null;index"`
	Amount      int64     `json:"amount" gorm:"not null"`
	Description string    `json:"description"`
	PaymentDate time.Time `json:"paymentDate" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (e Expense) IsIncome() bool {
	return e.Amount < 0
}
