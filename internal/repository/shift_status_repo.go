package repository

import (
	"errors"
	"time"

	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict means another writer changed the status since it was read.
var ErrVersionConflict = errors.New("shift status was modified concurrently")

type ShiftStatusRepository interface {
	FindByScope(scope string) (*model.ShiftStatus, error)
	// FindOrCreate returns the record of scope, creating it in the Active state on first use.
	FindOrCreate(scope string, employeeID *uuid.UUID) (*model.ShiftStatus, error)
	// SaveVersioned writes status if its stored version still equals status.Version,
	// then bumps status.Version.
	SaveVersioned(status *model.ShiftStatus) error
	DeleteScope(scope string) (bool, error)
}

type shiftStatusRepo struct {
	db *gorm.DB
}

func NewShiftStatusRepo(db *gorm.DB) ShiftStatusRepository {
	return &shiftStatusRepo{db}
}

func (r *shiftStatusRepo) FindByScope(scope string) (*model.ShiftStatus, error) {
	var status model.ShiftStatus
	if err := r.db.Where("scope = ?", scope).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *shiftStatusRepo) FindOrCreate(scope string, employeeID *uuid.UUID) (*model.ShiftStatus, error) {
	status, err := r.FindByScope(scope)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status = &model.ShiftStatus{
		ID:         uuid.New(),
		Scope:      scope,
		EmployeeID: employeeID,
		UpdatedAt:  time.Now(),
	}
	if createErr := r.db.Create(status).Error; createErr != nil {
		// Lost a creation race on the unique scope; the winner's row is what we want.
		if existing, findErr := r.FindByScope(scope); findErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return status, nil
}

func (r *shiftStatusRepo) SaveVersioned(status *model.ShiftStatus) error {
	now := time.Now()
	res := r.db.Model(&model.ShiftStatus{}).
		Where("id = ? AND version = ?", status.ID, status.Version).
		Updates(map[string]interface{}{
			"shift_ended": status.ShiftEnded,
			"started_at":  status.StartedAt,
			"ended_at":    status.EndedAt,
			"updated_by":  status.UpdatedBy,
			"updated_at":  now,
			"version":     status.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	status.Version++
	status.UpdatedAt = now
	return nil
}

func (r *shiftStatusRepo) DeleteScope(scope string) (bool, error) {
	res := r.db.Where("scope = ?", scope).Delete(&model.ShiftStatus{})
	return res.RowsAffected > 0, res.Error
}
