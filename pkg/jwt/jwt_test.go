package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	token, exp, err := m.GenerateToken(id, "a@b.c", "Ann", "admin", []string{"usps"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.EmployeeID != id || claims.Role != "admin" || claims.Email != "a@b.c" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(claims.Sessions) != 1 || claims.Sessions[0] != "usps" {
		t.Fatalf("sessions = %v", claims.Sessions)
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)
	expired := NewManager("test-secret", time.Nanosecond)

	foreign, _, _ := other.GenerateToken(uuid.New(), "x@y.z", "X", "employee", nil)
	stale, _, _ := expired.GenerateToken(uuid.New(), "x@y.z", "X", "employee", nil)
	time.Sleep(1100 * time.Millisecond)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"expired", stale, ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}
