package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayrollFilter struct {
	EmployeeID      *uuid.UUID
	Period          string
	Status          string
	IncludeInactive bool
}

type PayrollRepository interface {
	Create(payroll *model.Payroll) error
	Update(payroll *model.Payroll) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Payroll, error)
	FindAll(filter PayrollFilter) ([]model.Payroll, error)
}

type payrollRepo struct {
	db *gorm.DB
}

func NewPayrollRepo(db *gorm.DB) PayrollRepository {
	return &payrollRepo{db}
}

func (r *payrollRepo) Create(payroll *model.Payroll) error {
	return r.db.Omit("Employee").Create(payroll).Error
}

func (r *payrollRepo) Update(payroll *model.Payroll) error {
	return save(r.db, payroll)
}

func (r *payrollRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Payroll{}, id, deletedBy)
}

func (r *payrollRepo) FindByID(id uuid.UUID) (*model.Payroll, error) {
	var payroll model.Payroll
	if err := r.db.Preload("Employee").First(&payroll, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payroll, nil
}

func (r *payrollRepo) FindAll(filter PayrollFilter) ([]model.Payroll, error) {
	var payrolls []model.Payroll
	q := activeOnly(r.db.Preload("Employee"), filter.IncludeInactive)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Period != "" {
		q = q.Where("period = ?", filter.Period)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Order("period DESC, created_at DESC").Find(&payrolls).Error; err != nil {
		return nil, err
	}
	return payrolls, nil
}
