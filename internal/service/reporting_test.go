package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/testutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eastern is a fixed UTC-5 zone so the tests do not depend on system tzdata.
var eastern = time.FixedZone("EST", -5*3600)

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

type reportingFixture struct {
	db        *gorm.DB
	usps      USPSService
	orders    OrderService
	dashboard DashboardService
}

func newReportingFixture(t *testing.T, loc *time.Location) *reportingFixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &reportingFixture{
		db:        db,
		usps:      NewUSPSService(repository.NewUSPSRepo(db), repository.NewEmployeeRepo(db), nil, loc),
		orders:    NewOrderService(repository.NewOrderRepo(db), loc),
		dashboard: NewDashboardService(repository.NewDashboardRepo(db), loc),
	}
}

func (f *reportingFixture) label(t *testing.T, employee *model.Employee, date string, count int) {
	t.Helper()
	req := &USPSLabelRequest{EmployeeID: employee.ID.String(), LabelDate: date, LabelCount: count, Revenue: dec("1.00")}
	if _, err := f.usps.CreateLabel(req, adminActor); err != nil {
		t.Fatalf("create label: %v", err)
	}
}

func (f *reportingFixture) order(t *testing.T, number, status, date, amount, cost string) {
	t.Helper()
	req := &OrderRequest{
		OrderNumber:  number,
		CustomerName: "Acme",
		Quantity:     1,
		Amount:       dec(amount),
		Cost:         dec(cost),
		Status:       status,
		OrderDate:    date,
	}
	if _, err := f.orders.CreateOrder(req, adminActor); err != nil {
		t.Fatalf("create order %s: %v", number, err)
	}
}

func TestDefaultDatesFollowBusinessTimezone(t *testing.T) {
	// 03:30 UTC on Nov 1 is still Oct 31 in the business timezone.
	fixClock(t, time.Date(2026, 11, 1, 3, 30, 0, 0, time.UTC))

	cases := []struct {
		name string
		loc  *time.Location
		want string
	}{
		{"business timezone", eastern, "2026-10-31"},
		{"utc", time.UTC, "2026-11-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newReportingFixture(t, tc.loc)
			alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)

			label, err := f.usps.CreateLabel(&USPSLabelRequest{EmployeeID: alice.ID.String(), LabelCount: 4}, adminActor)
			if err != nil {
				t.Fatalf("create label: %v", err)
			}
			if got := label.LabelDate.Format(model.DateLayout); got != tc.want {
				t.Fatalf("label date = %s, want %s", got, tc.want)
			}

			order, err := f.orders.CreateOrder(&OrderRequest{OrderNumber: "A-1", CustomerName: "Acme", Amount: dec("10")}, adminActor)
			if err != nil {
				t.Fatalf("create order: %v", err)
			}
			if got := order.OrderDate.Format(model.DateLayout); got != tc.want {
				t.Fatalf("order date = %s, want %s", got, tc.want)
			}

			// The label falls in the current month of the same timezone either way.
			stats, err := f.dashboard.GetDashboardStats()
			if err != nil {
				t.Fatalf("stats: %v", err)
			}
			if stats.MonthUSPSLabels != 4 {
				t.Fatalf("month labels = %d, want 4", stats.MonthUSPSLabels)
			}
		})
	}
}

func TestOrderSummary_ExcludesCancelledFromTotals(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC))
	f := newReportingFixture(t, time.UTC)
	f.order(t, "A-1", model.OrderDelivered, "2026-10-02", "100", "60")
	f.order(t, "A-2", model.OrderPending, "2026-10-03", "50", "20")
	f.order(t, "A-3", model.OrderCancelled, "2026-10-04", "80", "30")
	f.order(t, "A-4", model.OrderDelivered, "2026-09-30", "999", "1")

	october := repository.DateRange{From: ptr(mustDate(t, "2026-10-01")), To: ptr(mustDate(t, "2026-10-31"))}
	cases := []struct {
		name    string
		filter  repository.OrderFilter
		count   int
		revenue string
		cost    string
		profit  string
	}{
		{"october", repository.OrderFilter{DateRange: october}, 3, "150", "80", "70"},
		{"cancelled only", repository.OrderFilter{DateRange: october, Status: model.OrderCancelled}, 1, "0", "0", "0"},
		{"all time", repository.OrderFilter{}, 4, "1149", "81", "1068"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := f.orders.Summary(tc.filter)
			if err != nil {
				t.Fatalf("summary: %v", err)
			}
			if summary.Count != tc.count {
				t.Fatalf("count = %d, want %d", summary.Count, tc.count)
			}
			if !summary.Revenue.Equal(dec(tc.revenue)) || !summary.Cost.Equal(dec(tc.cost)) || !summary.Profit.Equal(dec(tc.profit)) {
				t.Fatalf("totals = %s/%s/%s, want %s/%s/%s",
					summary.Revenue, summary.Cost, summary.Profit, tc.revenue, tc.cost, tc.profit)
			}
		})
	}

	summary, _ := f.orders.Summary(repository.OrderFilter{DateRange: october})
	if summary.ByStatus[model.OrderCancelled] != 1 || summary.ByStatus[model.OrderDelivered] != 1 {
		t.Fatalf("by status = %v", summary.ByStatus)
	}
	if _, err := f.orders.Summary(repository.OrderFilter{Status: "lost"}); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("bad status err = %v", err)
	}

	stats, err := f.dashboard.GetDashboardStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !stats.MonthOrderRevenue.Equal(dec("150")) {
		t.Fatalf("month order revenue = %s, want 150", stats.MonthOrderRevenue)
	}
}

func TestUSPSProgress_EmployeeAndTeamGoals(t *testing.T) {
	f := newReportingFixture(t, time.UTC)
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)
	bob := seedEmployee(t, f.db, "bob", model.RoleEmployee)

	f.label(t, alice, "2026-10-03", 300)
	f.label(t, bob, "2026-10-15", 250)
	f.label(t, alice, "2026-11-01", 400)

	if _, err := f.usps.CreateGoal(&USPSGoalRequest{Period: "2026-10", EmployeeID: alice.ID.String(), TargetLabels: 500}, adminActor); err != nil {
		t.Fatalf("alice goal: %v", err)
	}
	if _, err := f.usps.CreateGoal(&USPSGoalRequest{Period: "2026-10", TargetLabels: 500}, adminActor); err != nil {
		t.Fatalf("team goal: %v", err)
	}

	progress, err := f.usps.Progress(context.Background(), "2026-10")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("progress rows = %d, want 2", len(progress))
	}

	cases := []struct {
		name     string
		employee *uuid.UUID
		labels   int
		percent  float64
		reached  bool
	}{
		{"alice", &alice.ID, 300, 60, false},
		{"team", nil, 550, 110, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got *model.GoalProgress
			for i := range progress {
				id := progress[i].Goal.EmployeeID
				if (id == nil && tc.employee == nil) || (id != nil && tc.employee != nil && *id == *tc.employee) {
					got = &progress[i]
				}
			}
			if got == nil {
				t.Fatalf("no progress row")
			}
			if got.AchievedLabels != tc.labels || got.Percent != tc.percent || got.Reached != tc.reached {
				t.Fatalf("progress = %d labels %.2f%% reached=%v", got.AchievedLabels, got.Percent, got.Reached)
			}
		})
	}

	if _, err := f.usps.Progress(context.Background(), "October"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("bad period err = %v", err)
	}
}

func TestDashboardActivity_ZeroFilledDays(t *testing.T) {
	fixClock(t, time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC))
	f := newReportingFixture(t, time.UTC)
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)
	f.label(t, alice, "2026-10-19", 5)
	f.label(t, alice, "2026-10-19", 2)
	f.label(t, alice, "2026-10-10", 9)
	f.order(t, "A-1", model.OrderPending, "2026-10-20", "10", "0")

	activity, err := f.dashboard.GetDailyActivity(3)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	want := []repository.DailyActivity{
		{Date: "2026-10-18"},
		{Date: "2026-10-19", USPSLabels: 7},
		{Date: "2026-10-20", Orders: 1},
	}
	if len(activity) != len(want) {
		t.Fatalf("days = %d, want %d", len(activity), len(want))
	}
	for i, w := range want {
		if activity[i] != w {
			t.Errorf("day %d = %+v, want %+v", i, activity[i], w)
		}
	}
}

func TestShiftStats_Compliance(t *testing.T) {
	f := newAttendanceFixture(t)
	f.shifts.(*shiftService).now = func() time.Time { return f.clock }
	alice := seedEmployee(t, f.db, "alice", model.RoleEmployee)
	bob := seedEmployee(t, f.db, "bob", model.RoleEmployee)
	carol := seedEmployee(t, f.db, "carol", model.RoleEmployee)

	shift, err := f.shifts.CreateShift(&CreateShiftRequest{Name: "Morning", StartTime: "08:00", EndTime: "16:00"}, adminActor)
	if err != nil {
		t.Fatalf("create shift: %v", err)
	}
	ids := []string{alice.ID.String(), bob.ID.String(), carol.ID.String()}
	if _, err := f.shifts.AssignEmployees(shift.ID, &ShiftEmployeesRequest{EmployeeIDs: ids}, adminActor); err != nil {
		t.Fatalf("assign: %v", err)
	}

	empty, err := f.shifts.GetShiftStats(shift.ID)
	if err != nil {
		t.Fatalf("stats before check-ins: %v", err)
	}
	if empty.CheckedInToday != 0 || empty.ComplianceRate != 0 {
		t.Fatalf("stats before check-ins = %+v", empty)
	}

	f.clock = time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC)
	if _, err := f.svc.CheckIn(alice.ID, ""); err != nil {
		t.Fatalf("alice check-in: %v", err)
	}
	f.clock = time.Date(2026, 10, 5, 8, 30, 0, 0, time.UTC)
	if _, err := f.svc.CheckIn(bob.ID, ""); err != nil {
		t.Fatalf("bob check-in: %v", err)
	}

	stats, err := f.shifts.GetShiftStats(shift.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := model.ShiftStats{
		ShiftID:        shift.ID,
		Name:           "Morning",
		Date:           "2026-10-05",
		Headcount:      3,
		ScheduledToday: true,
		CheckedInToday: 2,
		OnTimeToday:    1,
		LateToday:      1,
		ComplianceRate: 0.5,
	}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}

	if _, err := f.shifts.GetShiftStats(uuid.New()); !errors.Is(err, ErrShiftNotFound) {
		t.Fatalf("unknown shift err = %v", err)
	}
}
