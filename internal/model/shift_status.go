package model

import (
	"time"

	"github.com/google/uuid"
)

// GlobalScope is the ShiftStatus scope shared by every employee without an override.
const GlobalScope = "global"

// EmployeeScope returns the ShiftStatus scope of a per-employee override.
func EmployeeScope(employeeID uuid.UUID) string {
	return "employee:" + employeeID.String()
}

// Shift-status actions reported back to the client
const (
	ActionStartShift = "start_shift"
	ActionTimeToGo   = "time_to_go"
)

// ShiftStatus is the explicit Active/Ended record of one scope.
// Version guards concurrent start/end transitions (optimistic concurrency).
type ShiftStatus struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	Scope      string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"scope"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	ShiftEnded bool       `gorm:"not null;default:false" json:"shift_ended"`
	StartedAt  *time.Time `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	UpdatedBy  string     `gorm:"type:varchar(64)" json:"updated_by"`
	Version    int64      `gorm:"not null;default:0" json:"version"`
}

func (ShiftStatus) TableName() string {
	return "shift_statuses"
}

// ShiftStatusResponse is what the shift-status endpoints return.
type ShiftStatusResponse struct {
	Scope      string     `json:"scope"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	ShiftEnded bool       `json:"shift_ended"`
	StartedAt  *time.Time `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	UpdatedBy  string     `json:"updated_by,omitempty"`
	Version    int64      `json:"version"`
	Headcount  int64      `json:"headcount"`
	Override   bool       `json:"override"`
	Action     string     `json:"action,omitempty"`
}

func (s *ShiftStatus) ToResponse() ShiftStatusResponse {
	return ShiftStatusResponse{
		Scope:      s.Scope,
		EmployeeID: s.EmployeeID,
		ShiftEnded: s.ShiftEnded,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		UpdatedAt:  s.UpdatedAt,
		UpdatedBy:  s.UpdatedBy,
		Version:    s.Version,
		Override:   s.Scope != GlobalScope,
	}
}
