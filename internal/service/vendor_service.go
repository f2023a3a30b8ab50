package service

import (
	"errors"
	"strings"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorService interface {
	CreateVendor(req *VendorRequest, actor Actor) (*model.Vendor, error)
	UpdateVendor(id uuid.UUID, req *VendorRequest, actor Actor) (*model.Vendor, error)
	DeleteVendor(id uuid.UUID, actor Actor) error
	GetVendor(id uuid.UUID) (*model.Vendor, error)
	GetVendors(filter repository.VendorFilter) ([]model.Vendor, error)
}

type VendorRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=32"`
	Category    string `json:"category" validate:"max=100"`
	Notes       string `json:"notes"`
}

type vendorService struct {
	vendorRepo repository.VendorRepository
}

func NewVendorService(vendorRepo repository.VendorRepository) VendorService {
	return &vendorService{vendorRepo: vendorRepo}
}

func (s *vendorService) CreateVendor(req *VendorRequest, actor Actor) (*model.Vendor, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vendor := &model.Vendor{}
	req.apply(vendor)
	vendor.IsActive = true
	vendor.Audit(actor.String())

	if err := s.vendorRepo.Create(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) UpdateVendor(id uuid.UUID, req *VendorRequest, actor Actor) (*model.Vendor, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vendor, err := s.GetVendor(id)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive {
		return nil, ErrVendorNotFound
	}
	req.apply(vendor)
	vendor.UpdatedBy = actor.String()

	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) DeleteVendor(id uuid.UUID, actor Actor) error {
	if err := s.vendorRepo.Delete(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return err
	}
	return nil
}

func (s *vendorService) GetVendor(id uuid.UUID) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) GetVendors(filter repository.VendorFilter) ([]model.Vendor, error) {
	return s.vendorRepo.FindAll(filter)
}

func (r *VendorRequest) apply(v *model.Vendor) {
	v.Name = strings.TrimSpace(r.Name)
	v.ContactName = r.ContactName
	v.Email = r.Email
	v.Phone = r.Phone
	v.Category = r.Category
	v.Notes = r.Notes
}
