package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type USPSFilter struct {
	DateRange
	EmployeeID      *uuid.UUID
	IncludeInactive bool
}

type USPSRepository interface {
	CreateLabel(tx *model.USPSTransaction) error
	UpdateLabel(tx *model.USPSTransaction) error
	DeleteLabel(id uuid.UUID, deletedBy string) error
	FindLabelByID(id uuid.UUID) (*model.USPSTransaction, error)
	FindLabels(filter USPSFilter) ([]model.USPSTransaction, error)

	CreateGoal(goal *model.USPSGoal) error
	UpdateGoal(goal *model.USPSGoal) error
	DeleteGoal(id uuid.UUID, deletedBy string) error
	FindGoalByID(id uuid.UUID) (*model.USPSGoal, error)
	FindGoals(period string, includeInactive bool) ([]model.USPSGoal, error)
}

type uspsRepo struct {
	db *gorm.DB
}

func NewUSPSRepo(db *gorm.DB) USPSRepository {
	return &uspsRepo{db}
}

func (r *uspsRepo) CreateLabel(tx *model.USPSTransaction) error {
	return r.db.Omit("Employee").Create(tx).Error
}

func (r *uspsRepo) UpdateLabel(tx *model.USPSTransaction) error {
	return save(r.db, tx)
}

func (r *uspsRepo) DeleteLabel(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.USPSTransaction{}, id, deletedBy)
}

func (r *uspsRepo) FindLabelByID(id uuid.UUID) (*model.USPSTransaction, error) {
	var tx model.USPSTransaction
	if err := r.db.Preload("Employee").First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *uspsRepo) FindLabels(filter USPSFilter) ([]model.USPSTransaction, error) {
	var txs []model.USPSTransaction
	q := activeOnly(r.db.Preload("Employee"), filter.IncludeInactive)
	q = dateBetween(q, "label_date", filter.From, filter.To)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if err := q.Order("label_date DESC, created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *uspsRepo) CreateGoal(goal *model.USPSGoal) error {
	return r.db.Omit("Employee").Create(goal).Error
}

func (r *uspsRepo) UpdateGoal(goal *model.USPSGoal) error {
	return save(r.db, goal)
}

func (r *uspsRepo) DeleteGoal(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.USPSGoal{}, id, deletedBy)
}

func (r *uspsRepo) FindGoalByID(id uuid.UUID) (*model.USPSGoal, error) {
	var goal model.USPSGoal
	if err := r.db.Preload("Employee").First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *uspsRepo) FindGoals(period string, includeInactive bool) ([]model.USPSGoal, error) {
	var goals []model.USPSGoal
	q := activeOnly(r.db.Preload("Employee"), includeInactive)
	if period != "" {
		q = q.Where("period = ?", period)
	}
	if err := q.Order("period DESC, created_at ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
