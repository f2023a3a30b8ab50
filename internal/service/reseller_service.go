package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const resellerCachePrefix = "reseller:"

type ResellerService interface {
	CreateClient(req *ResellerClientRequest, actor Actor) (*model.ResellerClient, error)
	UpdateClient(id uuid.UUID, req *ResellerClientRequest, actor Actor) (*model.ResellerClient, error)
	DeleteClient(id uuid.UUID, actor Actor) error
	GetClient(id uuid.UUID) (*model.ResellerClient, error)
	GetClients(filter repository.ResellerFilter) ([]model.ResellerClient, error)

	CreateLabel(req *ResellerLabelRequest, actor Actor) (*model.ResellerLabel, error)
	UpdateLabel(id uuid.UUID, req *ResellerLabelRequest, actor Actor) (*model.ResellerLabel, error)
	DeleteLabel(id uuid.UUID, actor Actor) error
	GetLabel(id uuid.UUID) (*model.ResellerLabel, error)
	GetLabels(filter repository.ResellerFilter) ([]model.ResellerLabel, error)

	CreateTransaction(req *ResellerTransactionRequest, actor Actor) (*model.ResellerTransaction, error)
	UpdateTransaction(id uuid.UUID, req *ResellerTransactionRequest, actor Actor) (*model.ResellerTransaction, error)
	DeleteTransaction(id uuid.UUID, actor Actor) error
	GetTransaction(id uuid.UUID) (*model.ResellerTransaction, error)
	GetTransactions(filter repository.ResellerFilter) ([]model.ResellerTransaction, error)

	Dashboard(ctx context.Context, from, to string) (*model.ResellerDashboard, error)
}

type ResellerClientRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	ContactName string          `json:"contact_name"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone" validate:"max=32"`
	ClientRate  decimal.Decimal `json:"client_rate"`
	VendorRate  decimal.Decimal `json:"vendor_rate"`
	Notes       string          `json:"notes"`
}

type ResellerLabelRequest struct {
	ClientID   string `json:"client_id" validate:"required,uuid"`
	LabelDate  string `json:"label_date"`
	LabelCount int    `json:"label_count" validate:"min=1"`
	Reference  string `json:"reference" validate:"max=100"`
	Notes      string `json:"notes"`
}

type ResellerTransactionRequest struct {
	ClientID        string          `json:"client_id" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date"`
	Method          string          `json:"method" validate:"max=32"`
	Reference       string          `json:"reference" validate:"max=100"`
	Notes           string          `json:"notes"`
}

type resellerService struct {
	repo  repository.ResellerRepository
	cache *cache.Cache
	loc   *time.Location
}

func NewResellerService(repo repository.ResellerRepository, c *cache.Cache, loc *time.Location) ResellerService {
	return &resellerService{repo: repo, cache: c, loc: loc}
}

// Clients

func (s *resellerService) CreateClient(req *ResellerClientRequest, actor Actor) (*model.ResellerClient, error) {
	client := &model.ResellerClient{}
	if err := req.apply(client); err != nil {
		return nil, err
	}
	client.IsActive = true
	client.Audit(actor.String())
	if err := s.repo.CreateClient(client); err != nil {
		return nil, err
	}
	s.invalidate()
	return client, nil
}

func (s *resellerService) UpdateClient(id uuid.UUID, req *ResellerClientRequest, actor Actor) (*model.ResellerClient, error) {
	client, err := s.GetClient(id)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, ErrClientNotFound
	}
	if err := req.apply(client); err != nil {
		return nil, err
	}
	client.UpdatedBy = actor.String()
	if err := s.repo.UpdateClient(client); err != nil {
		return nil, err
	}
	s.invalidate()
	return client, nil
}

func (s *resellerService) DeleteClient(id uuid.UUID, actor Actor) error {
	if err := s.repo.DeleteClient(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

func (s *resellerService) GetClient(id uuid.UUID) (*model.ResellerClient, error) {
	client, err := s.repo.FindClientByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *resellerService) GetClients(filter repository.ResellerFilter) ([]model.ResellerClient, error) {
	return s.repo.FindClients(filter)
}

// Labels

func (s *resellerService) CreateLabel(req *ResellerLabelRequest, actor Actor) (*model.ResellerLabel, error) {
	label := &model.ResellerLabel{}
	if err := s.applyLabel(req, label); err != nil {
		return nil, err
	}
	label.IsActive = true
	label.Audit(actor.String())
	if err := s.repo.CreateLabel(label); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindLabelByID(label.ID)
}

func (s *resellerService) UpdateLabel(id uuid.UUID, req *ResellerLabelRequest, actor Actor) (*model.ResellerLabel, error) {
	label, err := s.GetLabel(id)
	if err != nil {
		return nil, err
	}
	if !label.IsActive {
		return nil, ErrResellerLabelNotFound
	}
	if err := s.applyLabel(req, label); err != nil {
		return nil, err
	}
	label.UpdatedBy = actor.String()
	if err := s.repo.UpdateLabel(label); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindLabelByID(id)
}

func (s *resellerService) DeleteLabel(id uuid.UUID, actor Actor) error {
	if err := s.repo.DeleteLabel(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResellerLabelNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

func (s *resellerService) GetLabel(id uuid.UUID) (*model.ResellerLabel, error) {
	label, err := s.repo.FindLabelByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResellerLabelNotFound
		}
		return nil, err
	}
	return label, nil
}

func (s *resellerService) GetLabels(filter repository.ResellerFilter) ([]model.ResellerLabel, error) {
	return s.repo.FindLabels(filter)
}

// Transactions

func (s *resellerService) CreateTransaction(req *ResellerTransactionRequest, actor Actor) (*model.ResellerTransaction, error) {
	tx := &model.ResellerTransaction{}
	if err := s.applyTransaction(req, tx); err != nil {
		return nil, err
	}
	tx.IsActive = true
	tx.Audit(actor.String())
	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindTransactionByID(tx.ID)
}

func (s *resellerService) UpdateTransaction(id uuid.UUID, req *ResellerTransactionRequest, actor Actor) (*model.ResellerTransaction, error) {
	tx, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}
	if !tx.IsActive {
		return nil, ErrResellerTxNotFound
	}
	if err := s.applyTransaction(req, tx); err != nil {
		return nil, err
	}
	tx.UpdatedBy = actor.String()
	if err := s.repo.UpdateTransaction(tx); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindTransactionByID(id)
}

func (s *resellerService) DeleteTransaction(id uuid.UUID, actor Actor) error {
	if err := s.repo.DeleteTransaction(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResellerTxNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

func (s *resellerService) GetTransaction(id uuid.UUID) (*model.ResellerTransaction, error) {
	tx, err := s.repo.FindTransactionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResellerTxNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *resellerService) GetTransactions(filter repository.ResellerFilter) ([]model.ResellerTransaction, error) {
	return s.repo.FindTransactions(filter)
}

// Dashboard computes per-client profit for the optional date window, served from cache when possible.
func (s *resellerService) Dashboard(ctx context.Context, from, to string) (*model.ResellerDashboard, error) {
	window, err := ParseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	key := resellerCachePrefix + "dashboard:" + from + ":" + to
	var cached model.ResellerDashboard
	if found, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if found {
		return &cached, nil
	}

	clients, err := s.repo.FindClients(repository.ResellerFilter{})
	if err != nil {
		return nil, err
	}
	labels, err := s.repo.FindLabels(repository.ResellerFilter{DateRange: window})
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.FindTransactions(repository.ResellerFilter{DateRange: window})
	if err != nil {
		return nil, err
	}

	dash := CalculateResellerProfit(clients, labels, payments)
	dash.From, dash.To = from, to

	if err := s.cache.SetJSON(ctx, key, dash); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return &dash, nil
}

func (s *resellerService) invalidate() {
	s.cache.Invalidate(context.Background(), resellerCachePrefix)
}

func (r *ResellerClientRequest) apply(c *model.ResellerClient) error {
	if err := validate(r); err != nil {
		return err
	}
	if r.ClientRate.IsNegative() || r.VendorRate.IsNegative() {
		return ErrNegative
	}
	c.Name = strings.TrimSpace(r.Name)
	c.ContactName = r.ContactName
	c.Email = r.Email
	c.Phone = r.Phone
	c.ClientRate = r.ClientRate
	c.VendorRate = r.VendorRate
	c.Notes = r.Notes
	return nil
}

func (s *resellerService) activeClient(raw string) (uuid.UUID, error) {
	id, _ := uuid.Parse(raw)
	client, err := s.repo.FindClientByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, validationError("reseller client not found: %s", raw)
		}
		return uuid.Nil, err
	}
	if !client.IsActive {
		return uuid.Nil, ErrClientInactive
	}
	return client.ID, nil
}

func (s *resellerService) applyLabel(req *ResellerLabelRequest, l *model.ResellerLabel) error {
	if err := validate(req); err != nil {
		return err
	}
	clientID, err := s.activeClient(req.ClientID)
	if err != nil {
		return err
	}
	date, err := parseDateOr(req.LabelDate, localToday(s.loc))
	if err != nil {
		return err
	}
	l.ClientID = clientID
	l.Client = nil
	l.LabelDate = date
	l.LabelCount = req.LabelCount
	l.Reference = req.Reference
	l.Notes = req.Notes
	return nil
}

func (s *resellerService) applyTransaction(req *ResellerTransactionRequest, t *model.ResellerTransaction) error {
	if err := validate(req); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	clientID, err := s.activeClient(req.ClientID)
	if err != nil {
		return err
	}
	date, err := parseDateOr(req.TransactionDate, localToday(s.loc))
	if err != nil {
		return err
	}
	t.ClientID = clientID
	t.Client = nil
	t.Amount = req.Amount
	t.TransactionDate = date
	t.Method = req.Method
	t.Reference = req.Reference
	t.Notes = req.Notes
	return nil
}
