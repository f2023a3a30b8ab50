package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorFilter struct {
	Category        string
	Search          string
	IncludeInactive bool
}

type VendorRepository interface {
	Create(vendor *model.Vendor) error
	Update(vendor *model.Vendor) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Vendor, error)
	FindAll(filter VendorFilter) ([]model.Vendor, error)
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db}
}

func (r *vendorRepo) Create(vendor *model.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *vendorRepo) Update(vendor *model.Vendor) error {
	return save(r.db, vendor)
}

func (r *vendorRepo) Delete(id uuid.UUID, deletedBy string) error {
	return softDelete(r.db, &model.Vendor{}, id, deletedBy)
}

func (r *vendorRepo) FindByID(id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) FindAll(filter VendorFilter) ([]model.Vendor, error) {
	var vendors []model.Vendor
	q := activeOnly(r.db, filter.IncludeInactive)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = likeAny(q, filter.Search, "name", "contact_name", "email")
	if err := q.Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
