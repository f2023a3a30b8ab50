package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ExpensePending = "pending"
	ExpensePaid    = "paid"
)

type Expense struct {
	BaseModel
	VendorID      *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	Vendor        *Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Category      string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Description   string          `gorm:"type:text" json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	ExpenseDate   time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	PaymentMethod string          `gorm:"type:varchar(32)" json:"payment_method"`
	Reference     string          `gorm:"type:varchar(100)" json:"reference"`
	Status        string          `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
}

// ExpenseSummary aggregates expenses by category and by month.
type ExpenseSummary struct {
	Total      decimal.Decimal            `json:"total"`
	Count      int                        `json:"count"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
	ByMonth    map[string]decimal.Decimal `json:"by_month"`
}
