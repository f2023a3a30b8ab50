package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(req *OrderRequest, actor Actor) (*model.Order, error)
	UpdateOrder(id uuid.UUID, req *OrderRequest, actor Actor) (*model.Order, error)
	DeleteOrder(id uuid.UUID, actor Actor) error
	GetOrder(id uuid.UUID) (*model.Order, error)
	GetOrders(filter repository.OrderFilter) ([]model.Order, error)
	Summary(filter repository.OrderFilter) (*model.OrderSummary, error)
}

type OrderRequest struct {
	OrderNumber  string          `json:"order_number" validate:"required,max=50"`
	CustomerName string          `json:"customer_name" validate:"required,max=255"`
	Items        string          `json:"items"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	Amount       decimal.Decimal `json:"amount"`
	Cost         decimal.Decimal `json:"cost"`
	Status       string          `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	OrderDate    string          `json:"order_date"`
	Notes        string          `json:"notes"`
}

type orderService struct {
	orderRepo repository.OrderRepository
	loc       *time.Location
}

func NewOrderService(orderRepo repository.OrderRepository, loc *time.Location) OrderService {
	return &orderService{orderRepo: orderRepo, loc: loc}
}

func (s *orderService) CreateOrder(req *OrderRequest, actor Actor) (*model.Order, error) {
	order := &model.Order{}
	if err := s.apply(req, order, nil); err != nil {
		return nil, err
	}
	order.IsActive = true
	order.Audit(actor.String())

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrder(id uuid.UUID, req *OrderRequest, actor Actor) (*model.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if !order.IsActive {
		return nil, ErrOrderNotFound
	}
	if err := s.apply(req, order, &id); err != nil {
		return nil, err
	}
	order.UpdatedBy = actor.String()

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) DeleteOrder(id uuid.UUID, actor Actor) error {
	if err := s.orderRepo.Delete(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrders(filter repository.OrderFilter) ([]model.Order, error) {
	if err := checkOrderStatus(filter.Status); err != nil {
		return nil, err
	}
	return s.orderRepo.FindAll(filter)
}

var orderStatuses = []string{model.OrderPending, model.OrderProcessing, model.OrderShipped, model.OrderDelivered, model.OrderCancelled}

func checkOrderStatus(status string) error {
	if status == "" || slices.Contains(orderStatuses, status) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
}

// Summary counts orders by status; cancelled orders are excluded from money totals.
func (s *orderService) Summary(filter repository.OrderFilter) (*model.OrderSummary, error) {
	if err := checkOrderStatus(filter.Status); err != nil {
		return nil, err
	}
	filter.IncludeInactive = false
	orders, err := s.orderRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	summary := &model.OrderSummary{
		Revenue:  decimal.Zero,
		Cost:     decimal.Zero,
		Profit:   decimal.Zero,
		ByStatus: make(map[string]int),
	}
	for _, o := range orders {
		summary.Count++
		summary.ByStatus[o.Status]++
		if o.Status == model.OrderCancelled {
			continue
		}
		summary.Revenue = summary.Revenue.Add(o.Amount)
		summary.Cost = summary.Cost.Add(o.Cost)
	}
	summary.Profit = summary.Revenue.Sub(summary.Cost)
	return summary, nil
}

func (s *orderService) apply(req *OrderRequest, o *model.Order, excludeID *uuid.UUID) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.Amount.IsNegative() || req.Cost.IsNegative() {
		return ErrNegative
	}
	date, err := parseDateOr(req.OrderDate, localToday(s.loc))
	if err != nil {
		return err
	}
	number := strings.TrimSpace(req.OrderNumber)
	taken, err := s.orderRepo.NumberTaken(number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrOrderNumberTaken
	}

	o.OrderNumber = number
	o.CustomerName = strings.TrimSpace(req.CustomerName)
	o.Items = req.Items
	o.Quantity = req.Quantity
	if o.Quantity == 0 {
		o.Quantity = 1
	}
	o.Amount = req.Amount
	o.Cost = req.Cost
	o.Status = req.Status
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	o.OrderDate = date
	o.Notes = req.Notes
	return nil
}
