package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PayrollDraft    = "draft"
	PayrollApproved = "approved"
	PayrollPaid     = "paid"
)

type Payroll struct {
	BaseModel
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee    *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Period      string          `gorm:"type:varchar(7);not null;index" json:"period"` // YYYY-MM
	LabelsCount int             `gorm:"default:0" json:"labels_count"`
	BaseSalary  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_salary"`
	Bonus       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"bonus"`
	Deductions  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"deductions"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status      string          `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

// Compensation is the monthly salary breakdown of one employee.
type Compensation struct {
	EmployeeID uuid.UUID       `json:"employee_id"`
	Period     string          `json:"period"`
	Labels     int             `json:"labels"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Bonus      decimal.Decimal `json:"bonus"`
	Total      decimal.Decimal `json:"total"`
}
