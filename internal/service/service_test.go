package service

import (
	"errors"
	"testing"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/testutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var adminActor = Actor{ID: uuid.New(), Role: model.RoleAdmin}

func seedEmployee(t *testing.T, db *gorm.DB, name, role string) *model.Employee {
	t.Helper()
	e := &model.Employee{
		Email:    name + "@example.com",
		FullName: name,
		Password: "hash",
		Role:     role,
	}
	if err := repository.NewEmployeeRepo(db).Create(e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func TestShiftService_CreateAndList(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewShiftService(repository.NewShiftRepo(db), repository.NewAttendanceRepo(db), nil, nil)

	shift, err := svc.CreateShift(&CreateShiftRequest{
		Name:      "Night Shift",
		StartTime: "22:00",
		EndTime:   "06:00",
		Days:      []string{"friday", "Monday", "FRIDAY"},
	}, adminActor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !shift.IsOvernight {
		t.Fatal("22:00-06:00 should be overnight")
	}
	if shift.Color != model.DefaultShiftColor {
		t.Fatalf("color = %q, want default", shift.Color)
	}

	list, err := svc.GetShifts(true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d shifts, want 1", len(list))
	}
	got := list[0]
	if got.Name != "Night Shift" || got.StartTime != "22:00" || got.EndTime != "06:00" {
		t.Fatalf("listed shift = %+v", got)
	}
	if len(got.Days) != 2 || got.Days[0] != "Monday" || got.Days[1] != "Friday" {
		t.Fatalf("days = %v, want [Monday Friday]", got.Days)
	}
	if got.AssignedEmployees == nil {
		t.Fatal("assigned_employees should be an empty list, not null")
	}
}

func TestShiftService_CreateRejects(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewShiftService(repository.NewShiftRepo(db), repository.NewAttendanceRepo(db), nil, nil)
	if _, err := svc.CreateShift(&CreateShiftRequest{Name: "Day", StartTime: "08:00", EndTime: "16:00"}, adminActor); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name string
		req  CreateShiftRequest
		want error
	}{
		{"same start and end", CreateShiftRequest{Name: "A", StartTime: "09:00", EndTime: "09:00"}, ErrSameTimeStartEnd},
		{"bad weekday", CreateShiftRequest{Name: "B", StartTime: "09:00", EndTime: "17:00", Days: []string{"Funday"}}, ErrInvalidWeekday},
		{"bad time", CreateShiftRequest{Name: "C", StartTime: "25:00", EndTime: "17:00"}, ErrValidation},
		{"missing name", CreateShiftRequest{StartTime: "09:00", EndTime: "17:00"}, ErrValidation},
		{"duplicate name", CreateShiftRequest{Name: "day", StartTime: "09:00", EndTime: "17:00"}, ErrShiftNameTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			if _, err := svc.CreateShift(&req, adminActor); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestShiftService_AssignLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewShiftService(repository.NewShiftRepo(db), repository.NewAttendanceRepo(db), nil, nil)
	alice := seedEmployee(t, db, "alice", model.RoleEmployee)
	shift, err := svc.CreateShift(&CreateShiftRequest{Name: "Day", StartTime: "08:00", EndTime: "16:00"}, adminActor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := &ShiftEmployeesRequest{EmployeeIDs: []string{alice.ID.String()}}
	updated, err := svc.AssignEmployees(shift.ID, req, adminActor)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if resp := updated.ToResponse(); resp.AssignedCount != 1 {
		t.Fatalf("assigned count = %d", resp.AssignedCount)
	}
	unassigned, _ := svc.GetUnassignedEmployees()
	for _, e := range unassigned {
		if e.ID == alice.ID {
			t.Fatal("alice listed as unassigned after assign")
		}
	}

	if _, err := svc.UnassignEmployees(shift.ID, req, adminActor); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	unassigned, _ = svc.GetUnassignedEmployees()
	if len(unassigned) != 1 || unassigned[0].ID != alice.ID {
		t.Fatalf("unassigned = %+v", unassigned)
	}

	_, err = svc.AssignEmployees(shift.ID, &ShiftEmployeesRequest{EmployeeIDs: []string{uuid.NewString()}}, adminActor)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown employee err = %v, want validation error", err)
	}

	if err := svc.DeleteShift(shift.ID, adminActor); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetShiftByID(shift.ID); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("deleted shift lookup err = %v", err)
	}
	if _, err := svc.AssignEmployees(shift.ID, req, adminActor); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("assign to deleted shift err = %v", err)
	}
}

func TestPaymentService_Ownership(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPaymentService(repository.NewPaymentRepo(db), nil)
	alice := seedEmployee(t, db, "alice", model.RoleEmployee)
	bob := seedEmployee(t, db, "bob", model.RoleEmployee)
	aliceActor, bobActor := ActorOf(alice), ActorOf(bob)

	req := &PaymentRequest{Amount: dec("25.50"), Method: "zelle", Reference: "ZL-1"}
	tx, err := svc.CreateTransaction(req, aliceActor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.Status != model.PaymentPending || tx.SubmittedByID != alice.ID {
		t.Fatalf("created = %+v", tx)
	}

	if _, err := svc.UpdateTransaction(tx.ID, req, bobActor); !errors.Is(err, ErrNotOwnTransaction) {
		t.Fatalf("non-owner update err = %v", err)
	}
	if _, err := svc.GetTransaction(tx.ID, bobActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner get err = %v", err)
	}
	if list, _ := svc.GetTransactions(repository.PaymentFilter{}, bobActor); len(list) != 0 {
		t.Fatalf("bob sees %d transactions", len(list))
	}

	if _, err := svc.CreateTransaction(&PaymentRequest{Amount: dec("0"), Method: "cash"}, aliceActor); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount err = %v", err)
	}

	approved, err := svc.Approve(tx.ID, "ok", adminActor)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.PaymentApproved || approved.ReviewedByID == nil || *approved.ReviewedByID != adminActor.ID {
		t.Fatalf("approved = %+v", approved)
	}

	if _, err := svc.UpdateTransaction(tx.ID, req, aliceActor); !errors.Is(err, ErrTransactionReviewed) {
		t.Fatalf("update after approve err = %v", err)
	}
	if _, err := svc.Reject(tx.ID, "", adminActor); !errors.Is(err, ErrTransactionReviewed) {
		t.Fatalf("second review err = %v", err)
	}
	if err := svc.DeleteTransaction(tx.ID, aliceActor); !errors.Is(err, ErrTransactionReviewed) {
		t.Fatalf("delete after approve err = %v", err)
	}
}

func TestPayrollService_CalculateAndSave(t *testing.T) {
	db := testutil.NewDB(t)
	payrolls := repository.NewPayrollRepo(db)
	usps := repository.NewUSPSRepo(db)
	svc := NewPayrollService(payrolls, repository.NewEmployeeRepo(db), usps, dec("2000"), BonusRule{Threshold: 500, PerLabel: dec("0.50")})
	alice := seedEmployee(t, db, "alice", model.RoleEmployee)

	for _, l := range []struct {
		day   int
		count int
	}{{3, 400}, {17, 200}} {
		label := &model.USPSTransaction{
			EmployeeID: alice.ID,
			LabelDate:  mustDate(t, "2026-09-01").AddDate(0, 0, l.day-1),
			LabelCount: l.count,
		}
		if err := usps.CreateLabel(label); err != nil {
			t.Fatalf("create label: %v", err)
		}
	}

	req := &CalculatePayrollRequest{EmployeeID: alice.ID.String(), Period: "2026-09", Deductions: dec("10")}
	calc, err := svc.Calculate(req, ActorOf(alice))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if calc.Labels != 600 || !calc.Bonus.Equal(dec("50")) || !calc.Total.Equal(dec("2050")) {
		t.Fatalf("calculation = %+v", calc.Compensation)
	}
	if calc.Payroll != nil {
		t.Fatal("preview must not store a payroll")
	}

	req.Save = true
	if _, err := svc.Calculate(req, ActorOf(alice)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("employee save err = %v", err)
	}

	calc, err = svc.Calculate(req, adminActor)
	if err != nil {
		t.Fatalf("calculate with save: %v", err)
	}
	if calc.Payroll == nil || calc.Payroll.Status != model.PayrollDraft || !calc.Payroll.Total.Equal(dec("2040")) {
		t.Fatalf("saved payroll = %+v", calc.Payroll)
	}

	// Recalculating replaces the draft
	again, err := svc.Calculate(req, adminActor)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if again.Payroll.ID != calc.Payroll.ID {
		t.Fatal("recalculation created a second draft")
	}

	paid, err := svc.MarkPaid(calc.Payroll.ID, adminActor)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != model.PayrollPaid || paid.PaidAt == nil {
		t.Fatalf("paid = %+v", paid)
	}
	if _, err := svc.Calculate(req, adminActor); !errors.Is(err, ErrPayrollExists) {
		t.Fatalf("calculate over paid payroll err = %v", err)
	}
	if _, err := svc.MarkPaid(calc.Payroll.ID, adminActor); !errors.Is(err, ErrPayrollAlreadyPaid) {
		t.Fatalf("second mark paid err = %v", err)
	}
}
