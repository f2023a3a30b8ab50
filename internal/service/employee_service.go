package service

import (
	"errors"
	"slices"
	"strings"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee account is inactive")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrUnknownSession   = errors.New("unknown session tag")
	ErrLastAdmin        = errors.New("cannot remove the last active admin")
)

type EmployeeService interface {
	CreateEmployee(req *CreateEmployeeRequest, actor Actor) (*model.Employee, error)
	UpdateEmployee(id uuid.UUID, req *UpdateEmployeeRequest, actor Actor) (*model.Employee, error)
	DeleteEmployee(id uuid.UUID, actor Actor) error
	GetEmployee(id uuid.UUID, actor Actor) (*model.Employee, error)
	GetEmployees(filter repository.EmployeeFilter) ([]model.EmployeeResponse, error)
	SetSessions(id uuid.UUID, sessions []string, actor Actor) (*model.Employee, error)
	ToggleSession(id uuid.UUID, session string, actor Actor) (*model.Employee, error)
}

type CreateEmployeeRequest struct {
	Email           string           `json:"email" validate:"required,email"`
	Password        string           `json:"password" validate:"required,min=6"`
	FullName        string           `json:"full_name" validate:"required"`
	PhoneNumber     string           `json:"phone_number"`
	Role            string           `json:"role" validate:"omitempty,oneof=admin employee"`
	Position        string           `json:"position"`
	BankName        string           `json:"bank_name"`
	BankAccount     string           `json:"bank_account"`
	RoutingNumber   string           `json:"routing_number"`
	BaseSalary      *decimal.Decimal `json:"base_salary"`
	AllowedSessions []string         `json:"allowed_sessions"`
}

type UpdateEmployeeRequest struct {
	Email         *string          `json:"email" validate:"omitempty,email"`
	Password      *string          `json:"password" validate:"omitempty,min=6"`
	FullName      *string          `json:"full_name" validate:"omitempty,min=1"`
	PhoneNumber   *string          `json:"phone_number"`
	Role          *string          `json:"role" validate:"omitempty,oneof=admin employee"`
	Position      *string          `json:"position"`
	BankName      *string          `json:"bank_name"`
	BankAccount   *string          `json:"bank_account"`
	RoutingNumber *string          `json:"routing_number"`
	BaseSalary    *decimal.Decimal `json:"base_salary"`
	IsActive      *bool            `json:"is_active"`
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) CreateEmployee(req *CreateEmployeeRequest, actor Actor) (*model.Employee, error) {
	// 1. Validate payload
	if err := validate(req); err != nil {
		return nil, err
	}
	sessions, err := normalizeSessions(req.AllowedSessions)
	if err != nil {
		return nil, err
	}
	if req.BaseSalary != nil && req.BaseSalary.IsNegative() {
		return nil, ErrNegative
	}

	// 2. Email must be unique across active and inactive employees
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. Build and persist
	employee := &model.Employee{
		Email:           email,
		FullName:        strings.TrimSpace(req.FullName),
		PhoneNumber:     req.PhoneNumber,
		Role:            req.Role,
		Position:        req.Position,
		BankName:        req.BankName,
		BankAccount:     req.BankAccount,
		RoutingNumber:   req.RoutingNumber,
		AllowedSessions: sessions,
	}
	if employee.Role == "" {
		employee.Role = model.RoleEmployee
	}
	if req.BaseSalary != nil {
		employee.BaseSalary = *req.BaseSalary
	}
	employee.IsActive = true
	employee.Audit(actor.String())
	if err := employee.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	return s.employeeRepo.FindByID(employee.ID)
}

func (s *employeeService) UpdateEmployee(id uuid.UUID, req *UpdateEmployeeRequest, actor Actor) (*model.Employee, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	employee, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != employee.Email {
			if _, err := s.employeeRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			employee.Email = email
		}
	}
	if req.Password != nil {
		if err := employee.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}
	if req.FullName != nil {
		employee.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		employee.PhoneNumber = *req.PhoneNumber
	}
	if req.Role != nil && *req.Role != employee.Role {
		if employee.IsAdmin() {
			if err := s.ensureAnotherAdmin(); err != nil {
				return nil, err
			}
		}
		employee.Role = *req.Role
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.BankName != nil {
		employee.BankName = *req.BankName
	}
	if req.BankAccount != nil {
		employee.BankAccount = *req.BankAccount
	}
	if req.RoutingNumber != nil {
		employee.RoutingNumber = *req.RoutingNumber
	}
	if req.BaseSalary != nil {
		if req.BaseSalary.IsNegative() {
			return nil, ErrNegative
		}
		employee.BaseSalary = *req.BaseSalary
	}

	// Deactivation goes through DeleteEmployee so the shift assignment is released too.
	deactivate := req.IsActive != nil && !*req.IsActive && employee.IsActive
	if req.IsActive != nil && *req.IsActive {
		employee.IsActive = true
		employee.DeletedAt = nil
		employee.DeletedBy = ""
	}
	employee.UpdatedBy = actor.String()

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, err
	}
	if deactivate {
		if err := s.DeleteEmployee(id, actor); err != nil {
			return nil, err
		}
	}
	return s.employeeRepo.FindByID(id)
}

func (s *employeeService) DeleteEmployee(id uuid.UUID, actor Actor) error {
	employee, err := s.find(id)
	if err != nil {
		return err
	}
	if !employee.IsActive {
		return ErrEmployeeNotFound
	}
	if employee.IsAdmin() {
		if err := s.ensureAnotherAdmin(); err != nil {
			return err
		}
	}
	if err := s.employeeRepo.Deactivate(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

func (s *employeeService) GetEmployee(id uuid.UUID, actor Actor) (*model.Employee, error) {
	if !actor.canAccess(id) {
		return nil, ErrForbidden
	}
	return s.find(id)
}

func (s *employeeService) GetEmployees(filter repository.EmployeeFilter) ([]model.EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	responses := make([]model.EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = employees[i].ToResponse()
	}
	return responses, nil
}

func (s *employeeService) SetSessions(id uuid.UUID, sessions []string, actor Actor) (*model.Employee, error) {
	normalized, err := normalizeSessions(sessions)
	if err != nil {
		return nil, err
	}
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.UpdateSessions(id, normalized, actor.String()); err != nil {
		return nil, err
	}
	return s.employeeRepo.FindByID(id)
}

func (s *employeeService) ToggleSession(id uuid.UUID, session string, actor Actor) (*model.Employee, error) {
	session = strings.ToLower(strings.TrimSpace(session))
	if !slices.Contains(model.KnownSessions, session) {
		return nil, validationError("%s: %q", ErrUnknownSession.Error(), session)
	}
	employee, err := s.find(id)
	if err != nil {
		return nil, err
	}

	current := []string(employee.AllowedSessions)
	var next []string
	if slices.Contains(current, session) {
		next = slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == session })
	} else {
		next = append(slices.Clone(current), session)
	}
	return s.SetSessions(id, next, actor)
}

func (s *employeeService) find(id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) ensureAnotherAdmin() error {
	count, err := s.employeeRepo.CountAdmins()
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// normalizeSessions lower-cases, deduplicates and orders tags the way KnownSessions lists them.
func normalizeSessions(tags []string) ([]string, error) {
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if !slices.Contains(model.KnownSessions, t) {
			return nil, validationError("%s: %q", ErrUnknownSession.Error(), t)
		}
		seen[t] = true
	}
	out := make([]string, 0, len(seen))
	for _, known := range model.KnownSessions {
		if seen[known] {
			out = append(out, known)
		}
	}
	return out, nil
}
