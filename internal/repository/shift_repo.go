package repository

import (
	"fmt"
	"strings"
	"time"

	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnavailableEmployeesError lists assignment candidates that are unknown or inactive.
type UnavailableEmployeesError struct {
	IDs []uuid.UUID
}

func (e *UnavailableEmployeesError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("employee not found or inactive: %s", strings.Join(ids, ", "))
}

// AssignmentChange describes one employee that actually changed shift.
// FromShiftID is set when the employee was moved from another shift.
type AssignmentChange struct {
	EmployeeID  uuid.UUID
	FromShiftID *uuid.UUID
}

type ShiftRepository interface {
	Create(shift *model.Shift) error
	Update(shift *model.Shift) error
	Deactivate(id uuid.UUID, deletedBy string) ([]uuid.UUID, error)
	FindByID(id uuid.UUID) (*model.Shift, error)
	FindAll(activeOnly bool) ([]model.Shift, error)
	NameTaken(name string, excludeID *uuid.UUID) (bool, error)

	// Assignment table is the single source of truth for employee <-> shift.
	Assign(shiftID uuid.UUID, employeeIDs []uuid.UUID, assignedBy, note string) ([]AssignmentChange, error)
	Unassign(shiftID uuid.UUID, employeeIDs []uuid.UUID) ([]uuid.UUID, error)
	FindAssignment(employeeID uuid.UUID) (*model.ShiftAssignment, error)
	FindUnassignedEmployees() ([]model.Employee, error)
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db}
}

func (r *shiftRepo) Create(shift *model.Shift) error {
	return r.db.Omit("Assignments").Create(shift).Error
}

func (r *shiftRepo) Update(shift *model.Shift) error {
	return save(r.db, shift)
}

// Deactivate soft-deletes the shift and releases every assignment it held.
// It returns the employees that were released.
func (r *shiftRepo) Deactivate(id uuid.UUID, deletedBy string) ([]uuid.UUID, error) {
	var released []uuid.UUID
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := softDelete(tx, &model.Shift{}, id, deletedBy); err != nil {
			return err
		}
		if err := tx.Model(&model.ShiftAssignment{}).Where("shift_id = ?", id).Pluck("employee_id", &released).Error; err != nil {
			return err
		}
		return tx.Where("shift_id = ?", id).Delete(&model.ShiftAssignment{}).Error
	})
	return released, err
}

func (r *shiftRepo) FindByID(id uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	if err := r.withAssignments(r.db).First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindAll(activeOnly bool) ([]model.Shift, error) {
	var shifts []model.Shift
	q := r.withAssignments(r.db)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("start_time ASC, name ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepo) withAssignments(q *gorm.DB) *gorm.DB {
	return q.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("assigned_at ASC")
	}).Preload("Assignments.Employee")
}

// NameTaken reports whether an active shift already uses name (case-insensitive).
func (r *shiftRepo) NameTaken(name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.Shift{}).
		Where("is_active = ?", true).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Assign puts every employee in employeeIDs on the shift inside one transaction.
// Employees already on this shift are left alone; employees on another shift are moved.
func (r *shiftRepo) Assign(shiftID uuid.UUID, employeeIDs []uuid.UUID, assignedBy, note string) ([]AssignmentChange, error) {
	var changes []AssignmentChange
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 1. Every candidate must exist and be active
		var active []uuid.UUID
		if err := tx.Model(&model.Employee{}).
			Where("id IN ? AND is_active = ?", employeeIDs, true).
			Pluck("id", &active).Error; err != nil {
			return err
		}
		if missing := difference(employeeIDs, active); len(missing) > 0 {
			return &UnavailableEmployeesError{IDs: missing}
		}

		// 2. Load current assignments of the candidates
		var existing []model.ShiftAssignment
		if err := tx.Where("employee_id IN ?", employeeIDs).Find(&existing).Error; err != nil {
			return err
		}
		current := make(map[uuid.UUID]model.ShiftAssignment, len(existing))
		for _, a := range existing {
			current[a.EmployeeID] = a
		}

		// 3. Move or create
		now := time.Now()
		for _, employeeID := range employeeIDs {
			prev, ok := current[employeeID]
			if ok && prev.ShiftID == shiftID {
				continue
			}
			if ok {
				from := prev.ShiftID
				if err := tx.Model(&model.ShiftAssignment{}).Where("id = ?", prev.ID).Updates(map[string]interface{}{
					"shift_id":    shiftID,
					"assigned_at": now,
					"assigned_by": assignedBy,
					"note":        note,
				}).Error; err != nil {
					return err
				}
				prev.ShiftID = shiftID
				current[employeeID] = prev
				changes = append(changes, AssignmentChange{EmployeeID: employeeID, FromShiftID: &from})
				continue
			}
			assignment := model.ShiftAssignment{
				ID:         uuid.New(),
				ShiftID:    shiftID,
				EmployeeID: employeeID,
				AssignedAt: now,
				AssignedBy: assignedBy,
				Note:       note,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
			current[employeeID] = assignment
			changes = append(changes, AssignmentChange{EmployeeID: employeeID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// Unassign removes the given employees from the shift; ids not on this shift are ignored.
// It returns the employees actually removed.
func (r *shiftRepo) Unassign(shiftID uuid.UUID, employeeIDs []uuid.UUID) ([]uuid.UUID, error) {
	var removed []uuid.UUID
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ShiftAssignment{}).
			Where("shift_id = ? AND employee_id IN ?", shiftID, employeeIDs).
			Pluck("employee_id", &removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}
		return tx.Where("shift_id = ? AND employee_id IN ?", shiftID, removed).Delete(&model.ShiftAssignment{}).Error
	})
	return removed, err
}

func (r *shiftRepo) FindAssignment(employeeID uuid.UUID) (*model.ShiftAssignment, error) {
	var assignment model.ShiftAssignment
	if err := r.db.Preload("Shift").Where("employee_id = ?", employeeID).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindUnassignedEmployees returns active employees without an assignment row.
func (r *shiftRepo) FindUnassignedEmployees() ([]model.Employee, error) {
	var employees []model.Employee
	sub := r.db.Model(&model.ShiftAssignment{}).Select("employee_id")
	if err := r.db.Where("is_active = ?", true).
		Where("id NOT IN (?)", sub).
		Order("full_name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// difference returns the ids in want that are absent from have, without duplicates.
func difference(want, have []uuid.UUID) []uuid.UUID {
	present := make(map[uuid.UUID]struct{}, len(have))
	for _, id := range have {
		present[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range want {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
			present[id] = struct{}{}
		}
	}
	return missing
}
