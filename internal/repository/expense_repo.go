package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseFilter struct {
	DateRange
	Category        string
	Status          string
	VendorID        *uuid.UUID
	IncludeInactive bool
}

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	Update(expense *model.Expense) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Expense, error)
	FindAll(filter ExpenseFilter) ([]model.Expense, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Omit("Vendor").Create(expense).Error
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return save(r.db, expense)
}

func (r *expenseRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Expense{}, id, deletedBy)
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.Preload("Vendor").First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepo) FindAll(filter ExpenseFilter) ([]model.Expense, error) {
	var expenses []model.Expense
	q := activeOnly(r.db.Preload("Vendor"), filter.IncludeInactive)
	q = dateBetween(q, "expense_date", filter.From, filter.To)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.VendorID != nil {
		q = q.Where("vendor_id = ?", *filter.VendorID)
	}
	if err := q.Order("expense_date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}
