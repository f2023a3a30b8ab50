package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Employee roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Session tags gate which back-office tabs an employee may open.
var KnownSessions = []string{
	"attendance",
	"usps",
	"reseller",
	"transactions",
	"expenses",
	"orders",
	"payroll",
	"vendors",
}

// Employee is both the directory record and the login identity.
type Employee struct {
	BaseModel
	Email           string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string          `gorm:"type:varchar(255);not null" json:"-"`
	FullName        string          `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber     string          `gorm:"type:varchar(32)" json:"phone_number"`
	Role            string          `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Position        string          `gorm:"type:varchar(100)" json:"position"`
	BankName        string          `gorm:"type:varchar(100)" json:"bank_name"`
	BankAccount     string          `gorm:"type:varchar(64)" json:"bank_account"`
	RoutingNumber   string          `gorm:"type:varchar(32)" json:"routing_number"`
	BaseSalary      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"base_salary"`
	AllowedSessions StringList      `json:"allowed_sessions"`
	LastSeenAt      *time.Time      `json:"last_seen_at,omitempty"`

	// Has-one through the assignment table; the assignment row is the single source of truth.
	Assignment *ShiftAssignment `gorm:"foreignKey:EmployeeID" json:"-"`
}

// SetPassword hashes and sets the employee's password
func (e *Employee) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (e *Employee) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password))
	return err == nil
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// HasSession reports whether the employee may open the given tab. Admins see everything.
func (e *Employee) HasSession(tag string) bool {
	if e.IsAdmin() {
		return true
	}
	return slices.Contains(e.AllowedSessions, tag)
}

// ShiftRef is the compact shift reference embedded in employee responses.
type ShiftRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Color     string    `json:"color"`
}

// EmployeeResponse is used for API responses (without sensitive data)
type EmployeeResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	PhoneNumber     string          `json:"phone_number"`
	Role            string          `json:"role"`
	Position        string          `json:"position"`
	BankName        string          `json:"bank_name"`
	BankAccount     string          `json:"bank_account"`
	RoutingNumber   string          `json:"routing_number"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	AllowedSessions []string        `json:"allowed_sessions"`
	IsActive        bool            `json:"is_active"`
	LastSeenAt      *time.Time      `json:"last_seen_at,omitempty"`
	Shift           *ShiftRef       `json:"shift,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToResponse converts Employee to EmployeeResponse
func (e *Employee) ToResponse() EmployeeResponse {
	sessions := []string(e.AllowedSessions)
	if sessions == nil {
		sessions = []string{}
	}
	resp := EmployeeResponse{
		ID:              e.ID,
		Email:           e.Email,
		FullName:        e.FullName,
		PhoneNumber:     e.PhoneNumber,
		Role:            e.Role,
		Position:        e.Position,
		BankName:        e.BankName,
		BankAccount:     e.BankAccount,
		RoutingNumber:   e.RoutingNumber,
		BaseSalary:      e.BaseSalary,
		AllowedSessions: sessions,
		IsActive:        e.IsActive,
		LastSeenAt:      e.LastSeenAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if e.Assignment != nil && e.Assignment.Shift != nil {
		s := e.Assignment.Shift
		resp.Shift = &ShiftRef{ID: s.ID, Name: s.Name, StartTime: s.StartTime, EndTime: s.EndTime, Color: s.Color}
	}
	return resp
}
