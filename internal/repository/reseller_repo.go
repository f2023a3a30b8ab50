package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResellerFilter struct {
	DateRange
	ClientID        *uuid.UUID
	Search          string
	IncludeInactive bool
}

// ResellerRepository covers clients, the labels sold to them and the payments they made.
type ResellerRepository interface {
	CreateClient(client *model.ResellerClient) error
	UpdateClient(client *model.ResellerClient) error
	DeleteClient(id uuid.UUID, deletedBy string) error
	FindClientByID(id uuid.UUID) (*model.ResellerClient, error)
	FindClients(filter ResellerFilter) ([]model.ResellerClient, error)

	CreateLabel(label *model.ResellerLabel) error
	UpdateLabel(label *model.ResellerLabel) error
	DeleteLabel(id uuid.UUID, deletedBy string) error
	FindLabelByID(id uuid.UUID) (*model.ResellerLabel, error)
	FindLabels(filter ResellerFilter) ([]model.ResellerLabel, error)

	CreateTransaction(tx *model.ResellerTransaction) error
	UpdateTransaction(tx *model.ResellerTransaction) error
	DeleteTransaction(id uuid.UUID, deletedBy string) error
	FindTransactionByID(id uuid.UUID) (*model.ResellerTransaction, error)
	FindTransactions(filter ResellerFilter) ([]model.ResellerTransaction, error)
}

type resellerRepo struct {
	db *gorm.DB
}

func NewResellerRepo(db *gorm.DB) ResellerRepository {
	return &resellerRepo{db}
}

// Clients

func (r *resellerRepo) CreateClient(client *model.ResellerClient) error {
	return r.db.Create(client).Error
}

func (r *resellerRepo) UpdateClient(client *model.ResellerClient) error {
	return save(r.db, client)
}

func (r *resellerRepo) DeleteClient(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.ResellerClient{}, id, deletedBy)
}

func (r *resellerRepo) FindClientByID(id uuid.UUID) (*model.ResellerClient, error) {
	var client model.ResellerClient
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *resellerRepo) FindClients(filter ResellerFilter) ([]model.ResellerClient, error) {
	var clients []model.ResellerClient
	q := activeOnly(r.db, filter.IncludeInactive)
	q = likeAny(q, filter.Search, "name", "contact_name", "email")
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Labels

func (r *resellerRepo) CreateLabel(label *model.ResellerLabel) error {
	return r.db.Omit("Client").Create(label).Error
}

func (r *resellerRepo) UpdateLabel(label *model.ResellerLabel) error {
	return save(r.db, label)
}

func (r *resellerRepo) DeleteLabel(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.ResellerLabel{}, id, deletedBy)
}

func (r *resellerRepo) FindLabelByID(id uuid.UUID) (*model.ResellerLabel, error) {
	var label model.ResellerLabel
	if err := r.db.Preload("Client").First(&label, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *resellerRepo) FindLabels(filter ResellerFilter) ([]model.ResellerLabel, error) {
	var labels []model.ResellerLabel
	q := activeOnly(r.db.Preload("Client"), filter.IncludeInactive)
	q = dateBetween(q, "label_date", filter.From, filter.To)
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if err := q.Order("label_date DESC, created_at DESC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Transactions

func (r *resellerRepo) CreateTransaction(tx *model.ResellerTransaction) error {
	return r.db.Omit("Client").Create(tx).Error
}

func (r *resellerRepo) UpdateTransaction(tx *model.ResellerTransaction) error {
	return save(r.db, tx)
}

func (r *resellerRepo) DeleteTransaction(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.ResellerTransaction{}, id, deletedBy)
}

func (r *resellerRepo) FindTransactionByID(id uuid.UUID) (*model.ResellerTransaction, error) {
	var tx model.ResellerTransaction
	if err := r.db.Preload("Client").First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *resellerRepo) FindTransactions(filter ResellerFilter) ([]model.ResellerTransaction, error) {
	var txs []model.ResellerTransaction
	q := activeOnly(r.db.Preload("Client"), filter.IncludeInactive)
	q = dateBetween(q, "transaction_date", filter.From, filter.To)
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if err := q.Order("transaction_date DESC, created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
