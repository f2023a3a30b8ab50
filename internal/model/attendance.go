package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one check-in/check-out pair of an employee on a work date.
type Attendance struct {
	BaseModel
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee      *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	WorkDate      string     `gorm:"type:varchar(10);not null;index" json:"work_date"` // YYYY-MM-DD, app timezone
	CheckInAt     time.Time  `gorm:"not null" json:"check_in_at"`
	CheckOutAt    *time.Time `json:"check_out_at,omitempty"`
	WorkedMinutes int        `gorm:"default:0" json:"worked_minutes"`
	ShiftID       *uuid.UUID `gorm:"type:uuid;index" json:"shift_id,omitempty"`
	OnTime        bool       `gorm:"default:false" json:"on_time"`
	Note          string     `gorm:"type:text" json:"note,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}
