package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID), audit trail and the is_active soft-delete flag.
// Rows are never physically removed; deactivation sets IsActive=false and stamps DeletedAt/DeletedBy.
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(64)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(64)" json:"updated_by"`
	DeletedBy string `gorm:"type:varchar(64)" json:"deleted_by,omitempty"`
}

// BeforeCreate generates the UUID unless the caller already set one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Audit stamps creator/updater on a new record.
func (base *BaseModel) Audit(actorID string) {
	if base.CreatedBy == "" {
		base.CreatedBy = actorID
	}
	base.UpdatedBy = actorID
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// PeriodLayout is the wire format for monthly periods (payroll, goals).
const PeriodLayout = "2006-01"
