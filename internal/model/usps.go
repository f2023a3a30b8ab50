package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// USPSTransaction records labels sold by an employee on a given day.
type USPSTransaction struct {
	BaseModel
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	LabelDate     time.Time       `gorm:"type:date;not null;index" json:"label_date"`
	LabelCount    int             `gorm:"not null" json:"label_count"`
	Revenue       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"revenue"`
	Cost          decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cost"`
	Service       string          `gorm:"type:varchar(64)" json:"service"`
	Reference     string          `gorm:"type:varchar(100)" json:"reference"`
	ScreenshotURL string          `gorm:"type:text" json:"screenshot_url,omitempty"`
}

func (USPSTransaction) TableName() string {
	return "usps_transactions"
}

// USPSGoal is a monthly target; EmployeeID nil means a team-wide goal.
type USPSGoal struct {
	BaseModel
	Period        string          `gorm:"type:varchar(7);not null;index" json:"period"`
	EmployeeID    *uuid.UUID      `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	TargetLabels  int             `gorm:"not null" json:"target_labels"`
	TargetRevenue decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"target_revenue"`
	Notes         string          `gorm:"type:text" json:"notes"`
}

func (USPSGoal) TableName() string {
	return "usps_goals"
}

// USPSSummary aggregates USPS label activity.
type USPSSummary struct {
	Labels     int             `json:"labels"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	ByEmployee map[string]int  `json:"by_employee"`
	ByDay      map[string]int  `json:"by_day"`
}

// GoalProgress is a goal together with what has been achieved so far.
type GoalProgress struct {
	Goal            USPSGoal        `json:"goal"`
	AchievedLabels  int             `json:"achieved_labels"`
	AchievedRevenue decimal.Decimal `json:"achieved_revenue"`
	Percent         float64         `json:"percent"`
	Reached         bool            `json:"reached"`
}
