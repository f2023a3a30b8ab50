package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResellerClient buys labels at ClientRate; we buy them from the vendor at VendorRate.
type ResellerClient struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null;index" json:"name"`
	ContactName string          `gorm:"type:varchar(255)" json:"contact_name"`
	Email       string          `gorm:"type:varchar(255)" json:"email"`
	Phone       string          `gorm:"type:varchar(32)" json:"phone"`
	ClientRate  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"client_rate"`
	VendorRate  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"vendor_rate"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

// ProfitPerLabel is the margin earned on each label sold to this client.
func (c *ResellerClient) ProfitPerLabel() decimal.Decimal {
	return c.ClientRate.Sub(c.VendorRate)
}

type ResellerLabel struct {
	BaseModel
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *ResellerClient `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	LabelDate  time.Time       `gorm:"type:date;not null;index" json:"label_date"`
	LabelCount int             `gorm:"not null" json:"label_count"`
	Reference  string          `gorm:"type:varchar(100)" json:"reference"`
	Notes      string          `gorm:"type:text" json:"notes"`
}

// ResellerTransaction is a payment received from a reseller client.
type ResellerTransaction struct {
	BaseModel
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client          *ResellerClient `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	Method          string          `gorm:"type:varchar(32)" json:"method"`
	Reference       string          `gorm:"type:varchar(100)" json:"reference"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

// ClientProfit is one row of the reseller dashboard.
type ClientProfit struct {
	ClientID       uuid.UUID       `json:"client_id"`
	ClientName     string          `json:"client_name"`
	ClientRate     decimal.Decimal `json:"client_rate"`
	VendorRate     decimal.Decimal `json:"vendor_rate"`
	Labels         int             `json:"labels"`
	ProfitPerLabel decimal.Decimal `json:"profit_per_label"`
	Revenue        decimal.Decimal `json:"revenue"`
	VendorCost     decimal.Decimal `json:"vendor_cost"`
	Profit         decimal.Decimal `json:"profit"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
}

// ResellerDashboard aggregates ClientProfit rows.
type ResellerDashboard struct {
	From             string          `json:"from,omitempty"`
	To               string          `json:"to,omitempty"`
	Clients          []ClientProfit  `json:"clients"`
	TotalLabels      int             `json:"total_labels"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}
