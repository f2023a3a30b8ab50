package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentFilter struct {
	DateRange
	SubmittedByID   *uuid.UUID
	Status          string
	IncludeInactive bool
}

type PaymentRepository interface {
	Create(tx *model.PaymentTransaction) error
	Update(tx *model.PaymentTransaction) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.PaymentTransaction, error)
	FindAll(filter PaymentFilter) ([]model.PaymentTransaction, error)
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) Create(tx *model.PaymentTransaction) error {
	return r.db.Omit("SubmittedBy").Create(tx).Error
}

func (r *paymentRepo) Update(tx *model.PaymentTransaction) error {
	return save(r.db, tx)
}

func (r *paymentRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.PaymentTransaction{}, id, deletedBy)
}

func (r *paymentRepo) FindByID(id uuid.UUID) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction
	if err := r.db.Preload("SubmittedBy").First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *paymentRepo) FindAll(filter PaymentFilter) ([]model.PaymentTransaction, error) {
	var txs []model.PaymentTransaction
	q := activeOnly(r.db.Preload("SubmittedBy"), filter.IncludeInactive)
	q = dateBetween(q, "created_at", filter.From, filter.To)
	if filter.SubmittedByID != nil {
		q = q.Where("submitted_by_id = ?", *filter.SubmittedByID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
