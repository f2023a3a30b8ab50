package service

import (
	"errors"
	"testing"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/testutil"
)

var errLookupFailed = errors.New("connection reset")

// failingEmailRepo fails email lookups when fail is set.
type failingEmailRepo struct {
	repository.EmployeeRepository
	fail bool
}

func (r *failingEmailRepo) FindByEmail(email string) (*model.Employee, error) {
	if r.fail {
		return nil, errLookupFailed
	}
	return r.EmployeeRepository.FindByEmail(email)
}

func TestEmployeeService_UpdateEmail(t *testing.T) {
	cases := []struct {
		name       string
		email      string
		lookupFail bool
		wantErr    error
		wantEmail  string
	}{
		{"free address", "Alice.New@Example.com", false, nil, "alice.new@example.com"},
		{"unchanged address", "alice@example.com", true, nil, "alice@example.com"},
		{"taken address", "bob@example.com", false, ErrEmailTaken, ""},
		{"lookup error", "carol@example.com", true, errLookupFailed, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			alice := seedEmployee(t, db, "alice", model.RoleEmployee)
			seedEmployee(t, db, "bob", model.RoleEmployee)
			repo := &failingEmailRepo{EmployeeRepository: repository.NewEmployeeRepo(db), fail: tc.lookupFail}
			svc := NewEmployeeService(repo)

			email := tc.email
			updated, err := svc.UpdateEmployee(alice.ID, &UpdateEmployeeRequest{Email: &email}, adminActor)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if updated.Email != tc.wantEmail {
				t.Fatalf("email = %q, want %q", updated.Email, tc.wantEmail)
			}
		})
	}
}
