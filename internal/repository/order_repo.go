package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderFilter struct {
	DateRange
	Status          string
	Search          string
	IncludeInactive bool
}

type OrderRepository interface {
	Create(order *model.Order) error
	Update(order *model.Order) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindAll(filter OrderFilter) ([]model.Order, error)
	NumberTaken(orderNumber string, excludeID *uuid.UUID) (bool, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) Update(order *model.Order) error {
	return save(r.db, order)
}

func (r *orderRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Order{}, id, deletedBy)
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindAll(filter OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	q := activeOnly(r.db, filter.IncludeInactive)
	q = dateBetween(q, "order_date", filter.From, filter.To)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	q = likeAny(q, filter.Search, "order_number", "customer_name", "items")
	if err := q.Order("order_date DESC, created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// NumberTaken checks the unique order number across all rows, active or not.
func (r *orderRepo) NumberTaken(orderNumber string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.Order{}).Where("order_number = ?", orderNumber)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
