package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/ws"
	"go-backoffice-api/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ChangePassword(employeeID uuid.UUID, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Authenticate(tokenString string) (*model.Employee, error)
	Heartbeat(employeeID uuid.UUID) error
}

type LoginResponse struct {
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at"`
	Employee  model.EmployeeResponse `json:"employee"`
}

type TokenValidationResponse struct {
	Employee model.EmployeeResponse `json:"employee"`
	Role     string                 `json:"role"`
	Sessions []string               `json:"sessions"`
}

type authService struct {
	employeeRepo repository.EmployeeRepository
	tokens       *jwt.Manager
	wsHub        *ws.Hub
}

func NewAuthService(employeeRepo repository.EmployeeRepository, tokens *jwt.Manager, hub *ws.Hub) AuthService {
	return &authService{
		employeeRepo: employeeRepo,
		tokens:       tokens,
		wsHub:        hub,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find employee by email
	employee, err := s.employeeRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Deactivated employees cannot log in
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}

	// 3. Verify password
	if !employee.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, expiresAt, err := s.tokens.GenerateToken(employee.ID, employee.Email, employee.FullName, employee.Role, employee.AllowedSessions)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	now := time.Now()
	employee.LastSeenAt = &now
	if err := s.employeeRepo.UpdateLastSeen(employee.ID); err != nil {
		return nil, errors.New("failed to update session")
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Employee:  employee.ToResponse(),
	}, nil
}

func (s *authService) ChangePassword(employeeID uuid.UUID, oldPassword, newPassword string) error {
	// 1. Find employee
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		return ErrEmployeeNotFound
	}

	// 2. Verify old password
	if !employee.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if len(newPassword) < 6 {
		return validationError("new password must be at least 6 characters")
	}

	// 3. Set new password
	if err := employee.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// 4. Update in database
	return s.employeeRepo.UpdatePassword(employee.ID, employee.Password)
}

// Authenticate resolves a bearer token to an active employee.
func (s *authService) Authenticate(tokenString string) (*model.Employee, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindByID(claims.EmployeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}
	return employee, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	employee, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}
	resp := employee.ToResponse()
	return &TokenValidationResponse{
		Employee: resp,
		Role:     employee.Role,
		Sessions: resp.AllowedSessions,
	}, nil
}

func (s *authService) Heartbeat(employeeID uuid.UUID) error {
	// 1. Update timestamp
	if err := s.employeeRepo.UpdateLastSeen(employeeID); err != nil {
		return err
	}

	// 2. Broadcast presence so dashboards can show who is online
	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":         "employee_status_update",
		"employee_id":  employeeID.String(),
		"status":       "online",
		"last_seen_at": time.Now(),
	})

	return nil
}
