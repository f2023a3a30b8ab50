package service

import (
	"errors"
	"strconv"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/pkg/export"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayrollService interface {
	CreatePayroll(req *PayrollRequest, actor Actor) (*model.Payroll, error)
	UpdatePayroll(id uuid.UUID, req *PayrollRequest, actor Actor) (*model.Payroll, error)
	DeletePayroll(id uuid.UUID, actor Actor) error
	GetPayroll(id uuid.UUID, actor Actor) (*model.Payroll, error)
	GetPayrolls(filter repository.PayrollFilter, actor Actor) ([]model.Payroll, error)
	Calculate(req *CalculatePayrollRequest, actor Actor) (*PayrollCalculation, error)
	MarkPaid(id uuid.UUID, actor Actor) (*model.Payroll, error)
	Export(filter repository.PayrollFilter, format string, actor Actor) (*export.File, error)
}

type PayrollRequest struct {
	EmployeeID  string          `json:"employee_id" validate:"required,uuid"`
	Period      string          `json:"period" validate:"required,period"`
	LabelsCount int             `json:"labels_count" validate:"min=0"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft approved paid"`
	Notes       string          `json:"notes"`
}

type CalculatePayrollRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required,uuid"`
	Period     string          `json:"period" validate:"required,period"`
	Deductions decimal.Decimal `json:"deductions"`
	Save       bool            `json:"save"`
}

// PayrollCalculation is the calculator output plus the stored draft when one was saved.
type PayrollCalculation struct {
	model.Compensation
	Payroll *model.Payroll `json:"payroll,omitempty"`
}

type payrollService struct {
	payrollRepo  repository.PayrollRepository
	employeeRepo repository.EmployeeRepository
	uspsRepo     repository.USPSRepository
	defaultBase  decimal.Decimal
	rule         BonusRule
}

func NewPayrollService(
	payrollRepo repository.PayrollRepository,
	employeeRepo repository.EmployeeRepository,
	uspsRepo repository.USPSRepository,
	defaultBase decimal.Decimal,
	rule BonusRule,
) PayrollService {
	return &payrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		uspsRepo:     uspsRepo,
		defaultBase:  defaultBase,
		rule:         rule,
	}
}

func (s *payrollService) CreatePayroll(req *PayrollRequest, actor Actor) (*model.Payroll, error) {
	payroll := &model.Payroll{}
	if err := s.apply(req, payroll); err != nil {
		return nil, err
	}
	payroll.IsActive = true
	payroll.Audit(actor.String())

	if err := s.payrollRepo.Create(payroll); err != nil {
		return nil, err
	}
	return s.payrollRepo.FindByID(payroll.ID)
}

func (s *payrollService) UpdatePayroll(id uuid.UUID, req *PayrollRequest, actor Actor) (*model.Payroll, error) {
	payroll, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if payroll.Status == model.PayrollPaid {
		return nil, ErrPayrollAlreadyPaid
	}
	if err := s.apply(req, payroll); err != nil {
		return nil, err
	}
	payroll.UpdatedBy = actor.String()

	if err := s.payrollRepo.Update(payroll); err != nil {
		return nil, err
	}
	return s.payrollRepo.FindByID(id)
}

func (s *payrollService) DeletePayroll(id uuid.UUID, actor Actor) error {
	if err := s.payrollRepo.Delete(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPayrollNotFound
		}
		return err
	}
	return nil
}

func (s *payrollService) GetPayroll(id uuid.UUID, actor Actor) (*model.Payroll, error) {
	payroll, err := s.payrollRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		return nil, err
	}
	if !actor.canAccess(payroll.EmployeeID) {
		return nil, ErrForbidden
	}
	return payroll, nil
}

func (s *payrollService) GetPayrolls(filter repository.PayrollFilter, actor Actor) ([]model.Payroll, error) {
	filter.EmployeeID = actor.scopeEmployee(filter.EmployeeID)
	return s.payrollRepo.FindAll(filter)
}

// Calculate runs the salary calculator over the employee's USPS labels of the period.
// With Save it stores the result as a draft, replacing an existing draft of the same period.
func (s *payrollService) Calculate(req *CalculatePayrollRequest, actor Actor) (*PayrollCalculation, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Deductions.IsNegative() {
		return nil, ErrNegative
	}
	employeeID, _ := uuid.Parse(req.EmployeeID)
	if !actor.canAccess(employeeID) {
		return nil, ErrForbidden
	}
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	from, to, err := periodBounds(req.Period)
	if err != nil {
		return nil, err
	}

	// 2. Collect labels and run the calculator
	labels, err := s.uspsRepo.FindLabels(repository.USPSFilter{
		DateRange:  repository.DateRange{From: &from, To: &to},
		EmployeeID: &employeeID,
	})
	if err != nil {
		return nil, err
	}
	base := employee.BaseSalary
	if base.IsZero() {
		base = s.defaultBase
	}
	comp := CalculateSalary(labels, employeeID, base, s.rule)
	comp.Period = req.Period

	result := &PayrollCalculation{Compensation: comp}
	if !req.Save {
		return result, nil
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	// 3. Persist as draft
	existing, err := s.payrollRepo.FindAll(repository.PayrollFilter{EmployeeID: &employeeID, Period: req.Period})
	if err != nil {
		return nil, err
	}
	payroll := &model.Payroll{EmployeeID: employeeID, Period: req.Period, Status: model.PayrollDraft}
	for i := range existing {
		if existing[i].Status != model.PayrollDraft {
			return nil, ErrPayrollExists
		}
		payroll = &existing[i]
	}
	payroll.LabelsCount = comp.Labels
	payroll.BaseSalary = comp.BaseSalary
	payroll.Bonus = comp.Bonus
	payroll.Deductions = req.Deductions
	payroll.Total = comp.Total.Sub(req.Deductions)
	payroll.IsActive = true
	payroll.Audit(actor.String())

	if payroll.ID == uuid.Nil {
		err = s.payrollRepo.Create(payroll)
	} else {
		err = s.payrollRepo.Update(payroll)
	}
	if err != nil {
		return nil, err
	}
	result.Payroll, err = s.payrollRepo.FindByID(payroll.ID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *payrollService) MarkPaid(id uuid.UUID, actor Actor) (*model.Payroll, error) {
	payroll, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if payroll.Status == model.PayrollPaid {
		return nil, ErrPayrollAlreadyPaid
	}
	now := timeNow()
	payroll.Status = model.PayrollPaid
	payroll.PaidAt = &now
	payroll.UpdatedBy = actor.String()
	if err := s.payrollRepo.Update(payroll); err != nil {
		return nil, err
	}
	return payroll, nil
}

func (s *payrollService) Export(filter repository.PayrollFilter, format string, actor Actor) (*export.File, error) {
	payrolls, err := s.GetPayrolls(filter, actor)
	if err != nil {
		return nil, err
	}
	table := export.Table{
		Sheet:   "Payroll",
		Headers: []string{"Period", "Employee", "Email", "Labels", "Base Salary", "Bonus", "Deductions", "Total", "Status", "Bank", "Account", "Routing"},
	}
	for _, p := range payrolls {
		var name, email, bank, account, routing string
		if p.Employee != nil {
			name, email = p.Employee.FullName, p.Employee.Email
			bank, account, routing = p.Employee.BankName, p.Employee.BankAccount, p.Employee.RoutingNumber
		}
		table.Rows = append(table.Rows, []string{
			p.Period, name, email,
			strconv.Itoa(p.LabelsCount),
			p.BaseSalary.StringFixed(2),
			p.Bonus.StringFixed(2),
			p.Deductions.StringFixed(2),
			p.Total.StringFixed(2),
			p.Status, bank, account, routing,
		})
	}
	return export.Render(table, "payroll", format)
}

func (s *payrollService) find(id uuid.UUID) (*model.Payroll, error) {
	payroll, err := s.payrollRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		return nil, err
	}
	if !payroll.IsActive {
		return nil, ErrPayrollNotFound
	}
	return payroll, nil
}

func (s *payrollService) apply(req *PayrollRequest, p *model.Payroll) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.BaseSalary.IsNegative() || req.Bonus.IsNegative() || req.Deductions.IsNegative() {
		return ErrNegative
	}
	employeeID, _ := uuid.Parse(req.EmployeeID)
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationError("employee not found: %s", req.EmployeeID)
		}
		return err
	}

	p.EmployeeID = employee.ID
	p.Employee = nil
	p.Period = req.Period
	p.LabelsCount = req.LabelsCount
	p.BaseSalary = req.BaseSalary
	p.Bonus = req.Bonus
	p.Deductions = req.Deductions
	p.Total = req.BaseSalary.Add(req.Bonus).Sub(req.Deductions)
	p.Notes = req.Notes

	status := req.Status
	if status == "" {
		status = model.PayrollDraft
	}
	if status == model.PayrollPaid && p.PaidAt == nil {
		now := timeNow()
		p.PaidAt = &now
	}
	p.Status = status
	return nil
}
