package service

import (
	"errors"
	"fmt"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateTransaction(req *PaymentRequest, actor Actor) (*model.PaymentTransaction, error)
	UpdateTransaction(id uuid.UUID, req *PaymentRequest, actor Actor) (*model.PaymentTransaction, error)
	DeleteTransaction(id uuid.UUID, actor Actor) error
	GetTransaction(id uuid.UUID, actor Actor) (*model.PaymentTransaction, error)
	GetTransactions(filter repository.PaymentFilter, actor Actor) ([]model.PaymentTransaction, error)
	Approve(id uuid.UUID, note string, actor Actor) (*model.PaymentTransaction, error)
	Reject(id uuid.UUID, note string, actor Actor) (*model.PaymentTransaction, error)
}

type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method" validate:"required,max=32"`
	Reference     string          `json:"reference" validate:"max=100"`
	Description   string          `json:"description"`
	ScreenshotURL string          `json:"screenshot_url" validate:"omitempty,url"`
}

type ReviewRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

type paymentService struct {
	repo  repository.PaymentRepository
	wsHub *ws.Hub
}

func NewPaymentService(repo repository.PaymentRepository, hub *ws.Hub) PaymentService {
	return &paymentService{repo: repo, wsHub: hub}
}

func (s *paymentService) CreateTransaction(req *PaymentRequest, actor Actor) (*model.PaymentTransaction, error) {
	tx := &model.PaymentTransaction{SubmittedByID: actor.ID, Status: model.PaymentPending}
	if err := req.apply(tx); err != nil {
		return nil, err
	}
	tx.IsActive = true
	tx.Audit(actor.String())
	if err := s.repo.Create(tx); err != nil {
		return nil, err
	}

	tx, err := s.repo.FindByID(tx.ID)
	if err != nil {
		return nil, err
	}
	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":        "transaction_notification",
		"action":      "transaction_submitted",
		"transaction": tx,
	})
	return tx, nil
}

// UpdateTransaction lets the submitter edit a pending transaction; admins may edit any pending one.
func (s *paymentService) UpdateTransaction(id uuid.UUID, req *PaymentRequest, actor Actor) (*model.PaymentTransaction, error) {
	tx, err := s.modifiable(id, actor)
	if err != nil {
		return nil, err
	}
	if err := req.apply(tx); err != nil {
		return nil, err
	}
	tx.UpdatedBy = actor.String()
	if err := s.repo.Update(tx); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *paymentService) DeleteTransaction(id uuid.UUID, actor Actor) error {
	if _, err := s.modifiable(id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}

func (s *paymentService) GetTransaction(id uuid.UUID, actor Actor) (*model.PaymentTransaction, error) {
	tx, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !actor.canAccess(tx.SubmittedByID) {
		return nil, ErrForbidden
	}
	return tx, nil
}

func (s *paymentService) GetTransactions(filter repository.PaymentFilter, actor Actor) ([]model.PaymentTransaction, error) {
	filter.SubmittedByID = actor.scopeEmployee(filter.SubmittedByID)
	return s.repo.FindAll(filter)
}

func (s *paymentService) Approve(id uuid.UUID, note string, actor Actor) (*model.PaymentTransaction, error) {
	return s.review(id, model.PaymentApproved, note, actor)
}

func (s *paymentService) Reject(id uuid.UUID, note string, actor Actor) (*model.PaymentTransaction, error) {
	return s.review(id, model.PaymentRejected, note, actor)
}

func (s *paymentService) review(id uuid.UUID, status model.PaymentStatus, note string, actor Actor) (*model.PaymentTransaction, error) {
	tx, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if tx.Status != model.PaymentPending {
		return nil, ErrTransactionReviewed
	}

	now := timeNow()
	reviewer := actor.ID
	tx.Status = status
	tx.ReviewedByID = &reviewer
	tx.ReviewedAt = &now
	tx.ReviewNote = note
	tx.UpdatedBy = actor.String()
	if err := s.repo.Update(tx); err != nil {
		return nil, err
	}

	go s.wsHub.SendJSON([]string{tx.SubmittedByID.String()}, map[string]interface{}{
		"type":        "transaction_notification",
		"action":      "transaction_" + string(status),
		"message":     fmt.Sprintf("Your transaction of %s was %s", tx.Amount.StringFixed(2), status),
		"transaction": tx,
	})
	return tx, nil
}

// modifiable loads a transaction the actor may still change.
func (s *paymentService) modifiable(id uuid.UUID, actor Actor) (*model.PaymentTransaction, error) {
	tx, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !actor.canAccess(tx.SubmittedByID) {
		return nil, ErrNotOwnTransaction
	}
	if tx.Status != model.PaymentPending {
		return nil, ErrTransactionReviewed
	}
	return tx, nil
}

func (s *paymentService) find(id uuid.UUID) (*model.PaymentTransaction, error) {
	tx, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if !tx.IsActive {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

func (r *PaymentRequest) apply(tx *model.PaymentTransaction) error {
	if err := validate(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	tx.Amount = r.Amount
	tx.Method = r.Method
	tx.Reference = r.Reference
	tx.Description = r.Description
	tx.ScreenshotURL = r.ScreenshotURL
	return nil
}
