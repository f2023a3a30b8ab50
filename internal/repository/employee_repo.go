package repository

import (
	"time"

	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeFilter struct {
	Role            string
	Search          string
	IncludeInactive bool
}

type EmployeeRepository interface {
	FindByEmail(email string) (*model.Employee, error)
	FindByID(id uuid.UUID) (*model.Employee, error)
	FindAll(filter EmployeeFilter) ([]model.Employee, error)
	Create(employee *model.Employee) error
	Update(employee *model.Employee) error
	UpdatePassword(employeeID uuid.UUID, hashedPassword string) error
	UpdateSessions(employeeID uuid.UUID, sessions []string, updatedBy string) error
	Deactivate(id uuid.UUID, deletedBy string) error
	UpdateLastSeen(employeeID uuid.UUID) error
	CountAdmins() (int64, error)
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) FindByEmail(email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Preload("Assignment.Shift").Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) FindByID(id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Preload("Assignment.Shift").First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) FindAll(filter EmployeeFilter) ([]model.Employee, error) {
	var employees []model.Employee
	q := activeOnly(r.db.Preload("Assignment.Shift"), filter.IncludeInactive)
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	q = likeAny(q, filter.Search, "full_name", "email")
	if err := q.Order("full_name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepo) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepo) Update(employee *model.Employee) error {
	return save(r.db, employee)
}

func (r *employeeRepo) UpdatePassword(employeeID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Employee{}).Where("id = ?", employeeID).Update("password", hashedPassword).Error
}

func (r *employeeRepo) UpdateSessions(employeeID uuid.UUID, sessions []string, updatedBy string) error {
	res := r.db.Model(&model.Employee{}).Where("id = ?", employeeID).Updates(map[string]interface{}{
		"allowed_sessions": model.StringList(sessions),
		"updated_by":       updatedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes the employee and releases their shift assignment.
func (r *employeeRepo) Deactivate(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := softDelete(tx, &model.Employee{}, id, deletedBy); err != nil {
			return err
		}
		return tx.Where("employee_id = ?", id).Delete(&model.ShiftAssignment{}).Error
	})
}

func (r *employeeRepo) UpdateLastSeen(employeeID uuid.UUID) error {
	return r.db.Model(&model.Employee{}).Where("id = ?", employeeID).UpdateColumn("last_seen_at", time.Now()).Error
}

func (r *employeeRepo) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).Where("role = ? AND is_active = ?", model.RoleAdmin, true).Count(&count).Error
	return count, err
}
