package model

import (
	"time"

	"github.com/google/uuid"
)

// Weekdays in canonical order; Shift.Days only holds values from this list.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const DefaultShiftColor = "#3B82F6"

// Shift is a named, recurring work-time window.
// Overnight shifts are supported (e.g., 22:00 - 06:00 next day).
type Shift struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Time specification (HH:MM format, stored as string for minute precision)
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	Days  StringList `json:"days"`
	Color string     `gorm:"type:varchar(7)" json:"color"`

	// Calculated on save
	IsOvernight bool `gorm:"default:false" json:"is_overnight"`

	Assignments []ShiftAssignment `gorm:"foreignKey:ShiftID" json:"assignments,omitempty"`
}

// TableName specifies the table name for GORM
func (Shift) TableName() string {
	return "shifts"
}

// ShiftAssignment links one employee to one shift. The unique index on EmployeeID
// keeps an employee in at most one shift at a time.
type ShiftAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ShiftID    uuid.UUID `gorm:"type:uuid;not null;index" json:"shift_id"`
	Shift      *Shift    `gorm:"foreignKey:ShiftID" json:"-"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy string    `gorm:"type:varchar(64)" json:"assigned_by"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}

// ScheduledOn reports whether the shift runs on the given weekday.
// A shift with no days configured runs every day.
func (s *Shift) ScheduledOn(day time.Weekday) bool {
	if len(s.Days) == 0 {
		return true
	}
	name := day.String()
	for _, d := range s.Days {
		if d == name {
			return true
		}
	}
	return false
}

// AssignmentResponse is an assignment with the employee populated.
type AssignmentResponse struct {
	EmployeeID uuid.UUID         `json:"employee_id"`
	Employee   *EmployeeResponse `json:"employee,omitempty"`
	AssignedAt time.Time         `json:"assigned_at"`
	AssignedBy string            `json:"assigned_by"`
	Note       string            `json:"note,omitempty"`
}

// ShiftResponse for API responses
type ShiftResponse struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	StartTime         string               `json:"start_time"`
	EndTime           string               `json:"end_time"`
	Days              []string             `json:"days"`
	Color             string               `json:"color"`
	IsActive          bool                 `json:"is_active"`
	IsOvernight       bool                 `json:"is_overnight"`
	AssignedCount     int                  `json:"assigned_count"`
	AssignedEmployees []AssignmentResponse `json:"assigned_employees"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	CreatedBy         string               `json:"created_by"`
	UpdatedBy         string               `json:"updated_by"`
}

// ToResponse converts Shift to ShiftResponse
func (s *Shift) ToResponse() ShiftResponse {
	days := []string(s.Days)
	if days == nil {
		days = []string{}
	}
	response := ShiftResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		Days:              days,
		Color:             s.Color,
		IsActive:          s.IsActive,
		IsOvernight:       s.IsOvernight,
		AssignedCount:     len(s.Assignments),
		AssignedEmployees: make([]AssignmentResponse, 0, len(s.Assignments)),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		CreatedBy:         s.CreatedBy,
		UpdatedBy:         s.UpdatedBy,
	}

	for _, a := range s.Assignments {
		item := AssignmentResponse{
			EmployeeID: a.EmployeeID,
			AssignedAt: a.AssignedAt,
			AssignedBy: a.AssignedBy,
			Note:       a.Note,
		}
		if a.Employee != nil {
			emp := a.Employee.ToResponse()
			item.Employee = &emp
		}
		response.AssignedEmployees = append(response.AssignedEmployees, item)
	}

	return response
}

// ShiftStats is the per-shift headcount and time-window compliance for one day.
type ShiftStats struct {
	ShiftID        uuid.UUID `json:"shift_id"`
	Name           string    `json:"name"`
	Date           string    `json:"date"`
	Headcount      int       `json:"headcount"`
	ScheduledToday bool      `json:"scheduled_today"`
	CheckedInToday int       `json:"checked_in_today"`
	OnTimeToday    int       `json:"on_time_today"`
	LateToday      int       `json:"late_today"`
	ComplianceRate float64   `json:"compliance_rate"`
}
