package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	BaseModel
	OrderNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	CustomerName string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	Items        string          `gorm:"type:text" json:"items"`
	Quantity     int             `gorm:"default:1" json:"quantity"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Cost         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cost"`
	Status       string          `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	OrderDate    time.Time       `gorm:"type:date;not null;index" json:"order_date"`
	Notes        string          `gorm:"type:text" json:"notes"`
}

// OrderSummary is the order dashboard aggregate.
type OrderSummary struct {
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	Cost     decimal.Decimal `json:"cost"`
	Profit   decimal.Decimal `json:"profit"`
	ByStatus map[string]int  `json:"by_status"`
}
