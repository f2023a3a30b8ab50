package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/testutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := parseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

type attendanceFixture struct {
	db     *gorm.DB
	svc    *attendanceService
	shifts ShiftService
	clock  time.Time
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &attendanceFixture{db: db, clock: time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC)}
	f.svc = NewAttendanceService(
		repository.NewShiftStatusRepo(db),
		repository.NewAttendanceRepo(db),
		repository.NewEmployeeRepo(db),
		repository.NewShiftRepo(db),
		nil,
		time.UTC,
	).(*attendanceService)
	f.svc.now = func() time.Time { return f.clock }
	f.shifts = NewShiftService(repository.NewShiftRepo(db), repository.NewAttendanceRepo(db), nil, time.UTC)
	return f
}

func TestShiftStatus_StartAndTimeToGo(t *testing.T) {
	f := newAttendanceFixture(t)
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)

	status, err := f.svc.GetShiftStatus(nil, adminActor)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.ShiftEnded || status.Override {
		t.Fatalf("initial status = %+v, want active global", status)
	}

	started, err := f.svc.StartShift(nil, adminActor)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.ShiftEnded || started.StartedAt == nil || started.Action != model.ActionStartShift {
		t.Fatalf("started = %+v", started)
	}

	f.clock = f.clock.Add(9 * time.Hour)
	ended, err := f.svc.TimeToGo(nil, adminActor)
	if err != nil {
		t.Fatalf("time to go: %v", err)
	}
	if !ended.ShiftEnded || ended.EndedAt == nil || !ended.EndedAt.Equal(f.clock) {
		t.Fatalf("ended = %+v", ended)
	}

	// A second end keeps the original timestamp
	f.clock = f.clock.Add(time.Hour)
	again, err := f.svc.TimeToGo(nil, adminActor)
	if err != nil {
		t.Fatalf("second time to go: %v", err)
	}
	if !again.EndedAt.Equal(*ended.EndedAt) {
		t.Fatalf("ended_at moved from %v to %v", ended.EndedAt, again.EndedAt)
	}

	_, err = f.svc.CheckIn(alice.ID, "")
	if !errors.Is(err, ErrShiftEnded) || !strings.Contains(err.Error(), "shift has ended") {
		t.Fatalf("check-in while ended err = %v", err)
	}

	restarted, err := f.svc.StartShift(nil, adminActor)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if restarted.ShiftEnded || restarted.EndedAt != nil {
		t.Fatalf("restart should clear ended_at: %+v", restarted)
	}
	if _, err := f.svc.CheckIn(alice.ID, ""); err != nil {
		t.Fatalf("check-in after start: %v", err)
	}
}

func TestShiftStatus_OverrideTakesPrecedence(t *testing.T) {
	f := newAttendanceFixture(t)
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)
	bob := seedEmployee(t, f.db, "bob", model.RoleEmployee)

	if _, err := f.svc.TimeToGo(nil, adminActor); err != nil {
		t.Fatalf("end global: %v", err)
	}
	override, err := f.svc.StartShift(&alice.ID, adminActor)
	if err != nil {
		t.Fatalf("start override: %v", err)
	}
	if !override.Override || override.Scope != model.EmployeeScope(alice.ID) {
		t.Fatalf("override = %+v", override)
	}

	effective, _ := f.svc.GetShiftStatus(&alice.ID, adminActor)
	if effective.ShiftEnded {
		t.Fatal("alice's override should keep her shift active")
	}
	effective, _ = f.svc.GetShiftStatus(&bob.ID, adminActor)
	if !effective.ShiftEnded || effective.Override {
		t.Fatalf("bob should follow the ended global status: %+v", effective)
	}

	if _, err := f.svc.CheckIn(alice.ID, "early bird"); err != nil {
		t.Fatalf("alice check-in: %v", err)
	}
	if _, err := f.svc.CheckIn(bob.ID, ""); !errors.Is(err, ErrShiftEnded) {
		t.Fatalf("bob check-in err = %v", err)
	}

	if err := f.svc.ClearOverride(alice.ID, adminActor); err != nil {
		t.Fatalf("clear override: %v", err)
	}
	if err := f.svc.ClearOverride(alice.ID, adminActor); !errors.Is(err, ErrNoOverride) {
		t.Fatalf("second clear err = %v", err)
	}
	effective, _ = f.svc.GetShiftStatus(&alice.ID, adminActor)
	if !effective.ShiftEnded {
		t.Fatal("alice should follow the global status again")
	}

	if _, err := f.svc.GetShiftStatus(ptr(uuid.New()), adminActor); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("unknown employee err = %v", err)
	}
}

func TestAttendance_CheckInOut(t *testing.T) {
	f := newAttendanceFixture(t)
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)

	in, err := f.svc.CheckIn(alice.ID, "hello")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if in.WorkDate != "2026-10-05" || in.CheckOutAt != nil {
		t.Fatalf("attendance = %+v", in)
	}
	if _, err := f.svc.CheckIn(alice.ID, ""); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("double check-in err = %v", err)
	}

	status, _ := f.svc.GetShiftStatus(nil, adminActor)
	if status.Headcount != 1 {
		t.Fatalf("headcount = %d, want 1", status.Headcount)
	}

	f.clock = f.clock.Add(8*time.Hour + 30*time.Minute)
	out, err := f.svc.CheckOut(alice.ID, "bye")
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if out.CheckOutAt == nil || out.WorkedMinutes != 510 || out.Note != "hello\nbye" {
		t.Fatalf("check-out = %+v", out)
	}
	if _, err := f.svc.CheckOut(alice.ID, ""); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("double check-out err = %v", err)
	}

	status, _ = f.svc.GetShiftStatus(nil, adminActor)
	if status.Headcount != 0 {
		t.Fatalf("headcount after check-out = %d", status.Headcount)
	}

	mine, err := f.svc.GetToday(ActorOf(alice))
	if err != nil || len(mine) != 1 {
		t.Fatalf("today = %d records, err = %v", len(mine), err)
	}
}

func TestAttendance_Punctuality(t *testing.T) {
	cases := []struct {
		name   string
		start  string
		end    string
		at     time.Time
		onTime bool
	}{
		{"early", "08:00", "16:00", time.Date(2026, 10, 5, 7, 50, 0, 0, time.UTC), true},
		{"within grace", "08:00", "16:00", time.Date(2026, 10, 5, 8, 5, 0, 0, time.UTC), true},
		{"late", "08:00", "16:00", time.Date(2026, 10, 5, 8, 6, 0, 0, time.UTC), false},
		{"overnight before start", "22:00", "06:00", time.Date(2026, 10, 5, 21, 58, 0, 0, time.UTC), true},
		{"overnight after midnight", "22:00", "06:00", time.Date(2026, 10, 5, 1, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAttendanceFixture(t)
			alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)
			shift, err := f.shifts.CreateShift(&CreateShiftRequest{Name: "S", StartTime: tc.start, EndTime: tc.end}, adminActor)
			if err != nil {
				t.Fatalf("create shift: %v", err)
			}
			if _, err := f.shifts.AssignEmployees(shift.ID, &ShiftEmployeesRequest{EmployeeIDs: []string{alice.ID.String()}}, adminActor); err != nil {
				t.Fatalf("assign: %v", err)
			}

			f.clock = tc.at
			in, err := f.svc.CheckIn(alice.ID, "")
			if err != nil {
				t.Fatalf("check-in: %v", err)
			}
			if in.ShiftID == nil || *in.ShiftID != shift.ID {
				t.Fatalf("attendance not linked to shift: %+v", in.ShiftID)
			}
			if in.OnTime != tc.onTime {
				t.Fatalf("on_time = %v, want %v", in.OnTime, tc.onTime)
			}
		})
	}
}

func TestShiftStatus_ScopedToActor(t *testing.T) {
	f := newAttendanceFixture(t)
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)
	bob := seedEmployee(t, f.db, "bob", model.RoleEmployee)

	cases := []struct {
		name    string
		target  *uuid.UUID
		actor   Actor
		wantErr error
	}{
		{"global for employee", nil, ActorOf(alice), nil},
		{"own status", &alice.ID, ActorOf(alice), nil},
		{"other employee", &bob.ID, ActorOf(alice), ErrForbidden},
		{"admin reads anyone", &bob.ID, adminActor, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.GetShiftStatus(tc.target, tc.actor)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAttendance_StaleCheckInClosedOnNextCheckIn(t *testing.T) {
	cases := []struct {
		name  string
		later time.Time
	}{
		{"next morning", time.Date(2026, 10, 6, 9, 0, 0, 0, time.UTC)},
		{"a week later", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAttendanceFixture(t)
			alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)

			stale, err := f.svc.CheckIn(alice.ID, "")
			if err != nil {
				t.Fatalf("first check-in: %v", err)
			}

			f.clock = tc.later
			fresh, err := f.svc.CheckIn(alice.ID, "")
			if err != nil {
				t.Fatalf("check-in after forgotten checkout: %v", err)
			}
			if fresh.WorkDate != tc.later.Format(model.DateLayout) {
				t.Fatalf("work date = %s", fresh.WorkDate)
			}

			var closed model.Attendance
			if err := f.db.First(&closed, "id = ?", stale.ID).Error; err != nil {
				t.Fatalf("reload stale: %v", err)
			}
			wantEnd := time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC)
			if closed.CheckOutAt == nil || !closed.CheckOutAt.Equal(wantEnd) {
				t.Fatalf("stale check_out_at = %v, want %v", closed.CheckOutAt, wantEnd)
			}
			if closed.WorkedMinutes != 16*60 || closed.Note != staleCheckoutNote {
				t.Fatalf("stale record = %+v", closed)
			}

			out, err := f.svc.CheckOut(alice.ID, "")
			if err != nil {
				t.Fatalf("check-out: %v", err)
			}
			if out.ID != fresh.ID {
				t.Fatalf("checked out %s, want %s", out.ID, fresh.ID)
			}
		})
	}
}

func TestCheckInRequest_Validate(t *testing.T) {
	cases := []struct {
		name  string
		req   CheckInRequest
		valid bool
	}{
		{"empty", CheckInRequest{}, true},
		{"employee and note", CheckInRequest{EmployeeID: uuid.NewString(), Note: "on site"}, true},
		{"bad employee id", CheckInRequest{EmployeeID: "nope"}, false},
		{"note too long", CheckInRequest{Note: strings.Repeat("x", 501)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
