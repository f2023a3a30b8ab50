package service

import (
	"errors"
	"strings"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/pkg/export"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseService interface {
	CreateExpense(req *ExpenseRequest, actor Actor) (*model.Expense, error)
	UpdateExpense(id uuid.UUID, req *ExpenseRequest, actor Actor) (*model.Expense, error)
	DeleteExpense(id uuid.UUID, actor Actor) error
	GetExpense(id uuid.UUID) (*model.Expense, error)
	GetExpenses(filter repository.ExpenseFilter) ([]model.Expense, error)
	Summary(filter repository.ExpenseFilter) (*model.ExpenseSummary, error)
	Export(filter repository.ExpenseFilter, format string) (*export.File, error)
}

type ExpenseRequest struct {
	VendorID      string          `json:"vendor_id" validate:"omitempty,uuid"`
	Category      string          `json:"category" validate:"required,max=100"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   string          `json:"expense_date" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"max=32"`
	Reference     string          `json:"reference" validate:"max=100"`
	Status        string          `json:"status" validate:"omitempty,oneof=pending paid"`
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	vendorRepo  repository.VendorRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, vendorRepo repository.VendorRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, vendorRepo: vendorRepo}
}

func (s *expenseService) CreateExpense(req *ExpenseRequest, actor Actor) (*model.Expense, error) {
	expense := &model.Expense{}
	if err := s.apply(req, expense); err != nil {
		return nil, err
	}
	expense.IsActive = true
	expense.Audit(actor.String())

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindByID(expense.ID)
}

func (s *expenseService) UpdateExpense(id uuid.UUID, req *ExpenseRequest, actor Actor) (*model.Expense, error) {
	expense, err := s.GetExpense(id)
	if err != nil {
		return nil, err
	}
	if !expense.IsActive {
		return nil, ErrExpenseNotFound
	}
	if err := s.apply(req, expense); err != nil {
		return nil, err
	}
	expense.UpdatedBy = actor.String()

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindByID(id)
}

func (s *expenseService) DeleteExpense(id uuid.UUID, actor Actor) error {
	if err := s.expenseRepo.Delete(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	return nil
}

func (s *expenseService) GetExpense(id uuid.UUID) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetExpenses(filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.FindAll(filter)
}

// Summary totals active expenses by category and by YYYY-MM month.
func (s *expenseService) Summary(filter repository.ExpenseFilter) (*model.ExpenseSummary, error) {
	filter.IncludeInactive = false
	expenses, err := s.expenseRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	summary := &model.ExpenseSummary{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
		ByMonth:    make(map[string]decimal.Decimal),
	}
	for _, e := range expenses {
		summary.Count++
		summary.Total = summary.Total.Add(e.Amount)
		summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(e.Amount)
		month := e.ExpenseDate.Format(model.PeriodLayout)
		summary.ByMonth[month] = summary.ByMonth[month].Add(e.Amount)
	}
	return summary, nil
}

func (s *expenseService) Export(filter repository.ExpenseFilter, format string) (*export.File, error) {
	expenses, err := s.expenseRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	table := export.Table{
		Sheet:   "Expenses",
		Headers: []string{"Date", "Category", "Vendor", "Description", "Amount", "Payment Method", "Reference", "Status"},
	}
	for _, e := range expenses {
		vendor := ""
		if e.Vendor != nil {
			vendor = e.Vendor.Name
		}
		table.Rows = append(table.Rows, []string{
			e.ExpenseDate.Format(model.DateLayout),
			e.Category,
			vendor,
			e.Description,
			e.Amount.StringFixed(2),
			e.PaymentMethod,
			e.Reference,
			e.Status,
		})
	}
	return export.Render(table, "expenses", format)
}

func (s *expenseService) apply(req *ExpenseRequest, e *model.Expense) error {
	// 1. Validate payload
	if err := validate(req); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		return err
	}

	// 2. Vendor, when given, must exist and be active
	e.VendorID = nil
	e.Vendor = nil
	if req.VendorID != "" {
		vendorID, _ := uuid.Parse(req.VendorID)
		vendor, err := s.vendorRepo.FindByID(vendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationError("vendor not found: %s", req.VendorID)
			}
			return err
		}
		if !vendor.IsActive {
			return ErrVendorInactive
		}
		e.VendorID = &vendorID
	}

	// 3. Copy fields
	e.Category = strings.TrimSpace(req.Category)
	e.Description = req.Description
	e.Amount = req.Amount
	e.ExpenseDate = date
	e.PaymentMethod = req.PaymentMethod
	e.Reference = req.Reference
	e.Status = req.Status
	if e.Status == "" {
		e.Status = model.ExpensePending
	}
	return nil
}
