package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentTransaction is a payment submitted by an employee and reviewed by an admin.
type PaymentTransaction struct {
	BaseModel
	SubmittedByID uuid.UUID       `gorm:"type:uuid;not null;index" json:"submitted_by_id"`
	SubmittedBy   *Employee       `gorm:"foreignKey:SubmittedByID" json:"submitted_by,omitempty"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method        string          `gorm:"type:varchar(32);not null" json:"method"`
	Reference     string          `gorm:"type:varchar(100)" json:"reference"`
	Description   string          `gorm:"type:text" json:"description"`
	ScreenshotURL string          `gorm:"type:text" json:"screenshot_url,omitempty"`
	Status        PaymentStatus   `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	ReviewedByID  *uuid.UUID      `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNote    string          `gorm:"type:text" json:"review_note,omitempty"`
}
