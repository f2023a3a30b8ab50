package service

import (
	"errors"
	"strings"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrShiftEnded       = errors.New("Cannot check in: the shift has ended. Wait for an admin to start the next shift")
	ErrAlreadyCheckedIn = errors.New("already checked in today, check out first")
	ErrNotCheckedIn     = errors.New("no open check-in to close")
	ErrStatusConflict   = errors.New("shift status is being changed by someone else, try again")
	ErrNoOverride       = errors.New("employee has no shift status override")
)

const (
	// checkInGrace is how late a check-in may be and still count as on time.
	checkInGrace = 5
	// statusRetries bounds optimistic retries of a shift-status transition.
	statusRetries = 3
	// staleCheckoutNote marks a check-in closed automatically because no checkout was recorded.
	staleCheckoutNote = "auto-closed: no checkout recorded"
)

type AttendanceService interface {
	GetShiftStatus(employeeID *uuid.UUID, actor Actor) (*model.ShiftStatusResponse, error)
	StartShift(employeeID *uuid.UUID, actor Actor) (*model.ShiftStatusResponse, error)
	TimeToGo(employeeID *uuid.UUID, actor Actor) (*model.ShiftStatusResponse, error)
	ClearOverride(employeeID uuid.UUID, actor Actor) error
	CheckIn(employeeID uuid.UUID, note string) (*model.Attendance, error)
	CheckOut(employeeID uuid.UUID, note string) (*model.Attendance, error)
	GetAttendance(filter repository.AttendanceFilter, actor Actor) ([]model.Attendance, error)
	GetToday(actor Actor) ([]model.Attendance, error)
}

type CheckInRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
	Note       string `json:"note" validate:"max=500"`
}

func (r *CheckInRequest) Validate() error {
	return validate(r)
}

type attendanceService struct {
	statusRepo     repository.ShiftStatusRepository
	attendanceRepo repository.AttendanceRepository
	employeeRepo   repository.EmployeeRepository
	shiftRepo      repository.ShiftRepository
	wsHub          *ws.Hub
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	statusRepo repository.ShiftStatusRepository,
	attendanceRepo repository.AttendanceRepository,
	employeeRepo repository.EmployeeRepository,
	shiftRepo repository.ShiftRepository,
	hub *ws.Hub,
	loc *time.Location,
) AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceService{
		statusRepo:     statusRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		shiftRepo:      shiftRepo,
		wsHub:          hub,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *attendanceService) today() string {
	return s.now().In(s.loc).Format(model.DateLayout)
}

// GetShiftStatus returns the global status, or the status that governs one employee:
// their override when present, the global record otherwise. Only admins may read another employee's status.
func (s *attendanceService) GetShiftStatus(employeeID *uuid.UUID, actor Actor) (*model.ShiftStatusResponse, error) {
	var status *model.ShiftStatus
	if employeeID != nil {
		if !actor.canAccess(*employeeID) {
			return nil, ErrForbidden
		}
		if _, err := s.activeEmployee(*employeeID); err != nil {
			return nil, err
		}
		effective, err := s.effectiveStatus(*employeeID)
		if err != nil {
			return nil, err
		}
		status = effective
	} else {
		global, err := s.statusRepo.FindOrCreate(model.GlobalScope, nil)
		if err != nil {
			return nil, err
		}
		status = global
	}
	return s.respond(status, "")
}

func (s *attendanceService) StartShift(employeeID *uuid.UUID, actor Actor) (*model.ShiftStatusResponse, error) {
	return s.transition(employeeID, actor, model.ActionStartShift)
}

func (s *attendanceService) TimeToGo(employeeID *uuid.UUID, actor Actor) (*model.ShiftStatusResponse, error) {
	return s.transition(employeeID, actor, model.ActionTimeToGo)
}

// ClearOverride drops an employee's override so the global status applies again.
func (s *attendanceService) ClearOverride(employeeID uuid.UUID, actor Actor) error {
	deleted, err := s.statusRepo.DeleteScope(model.EmployeeScope(employeeID))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoOverride
	}
	log.Info().Str("employee_id", employeeID.String()).Str("by", actor.String()).Msg("shift status override cleared")
	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":        "shift_status",
		"action":      "override_cleared",
		"employee_id": employeeID,
	})
	return nil
}

// transition moves a scope between Active and Ended with an optimistic version check,
// retrying when another writer got there first.
func (s *attendanceService) transition(employeeID *uuid.UUID, actor Actor, action string) (*model.ShiftStatusResponse, error) {
	scope := model.GlobalScope
	if employeeID != nil {
		if _, err := s.activeEmployee(*employeeID); err != nil {
			return nil, err
		}
		scope = model.EmployeeScope(*employeeID)
	}

	for attempt := 1; attempt <= statusRetries; attempt++ {
		status, err := s.statusRepo.FindOrCreate(scope, employeeID)
		if err != nil {
			return nil, err
		}

		now := s.now()
		switch action {
		case model.ActionStartShift:
			status.ShiftEnded = false
			status.StartedAt = &now
			status.EndedAt = nil
		case model.ActionTimeToGo:
			if status.ShiftEnded {
				// Already ended: keep the original ended_at.
				return s.respond(status, action)
			}
			status.ShiftEnded = true
			status.EndedAt = &now
		}
		status.UpdatedBy = actor.String()

		err = s.statusRepo.SaveVersioned(status)
		if errors.Is(err, repository.ErrVersionConflict) {
			log.Warn().Str("scope", scope).Int("attempt", attempt).Msg("shift status version conflict, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		resp, err := s.respond(status, action)
		if err != nil {
			return nil, err
		}
		go s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":   "shift_status",
			"action": action,
			"status": resp,
		})
		return resp, nil
	}
	return nil, ErrStatusConflict
}

func (s *attendanceService) respond(status *model.ShiftStatus, action string) (*model.ShiftStatusResponse, error) {
	headcount, err := s.attendanceRepo.CountOpen(s.today())
	if err != nil {
		return nil, err
	}
	resp := status.ToResponse()
	resp.Headcount = headcount
	resp.Action = action
	return &resp, nil
}

// effectiveStatus is the override of the employee when one exists, else the global record.
func (s *attendanceService) effectiveStatus(employeeID uuid.UUID) (*model.ShiftStatus, error) {
	override, err := s.statusRepo.FindByScope(model.EmployeeScope(employeeID))
	if err == nil {
		return override, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.statusRepo.FindOrCreate(model.GlobalScope, nil)
}

func (s *attendanceService) CheckIn(employeeID uuid.UUID, note string) (*model.Attendance, error) {
	// 1. Employee must exist and be active
	if _, err := s.activeEmployee(employeeID); err != nil {
		return nil, err
	}

	// 2. Gate on the status that governs this employee
	status, err := s.effectiveStatus(employeeID)
	if err != nil {
		return nil, err
	}
	if status.ShiftEnded {
		return nil, ErrShiftEnded
	}

	// 3. One open check-in per work date
	now := s.now()
	workDate := now.In(s.loc).Format(model.DateLayout)
	open, err := s.attendanceRepo.FindOpen(employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if open != nil {
		if open.WorkDate == workDate {
			return nil, ErrAlreadyCheckedIn
		}
		if err := s.closeStale(open, now); err != nil {
			return nil, err
		}
	}

	// 4. Punctuality against the assigned shift window
	attendance := &model.Attendance{
		EmployeeID: employeeID,
		WorkDate:   workDate,
		CheckInAt:  now,
		Note:       strings.TrimSpace(note),
	}
	assignment, err := s.shiftRepo.FindAssignment(employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if assignment != nil && assignment.Shift != nil && assignment.Shift.IsActive {
		shiftID := assignment.ShiftID
		attendance.ShiftID = &shiftID
		attendance.OnTime = onTime(assignment.Shift, now.In(s.loc))
	}
	attendance.IsActive = true
	attendance.Audit(employeeID.String())

	if err := s.attendanceRepo.Create(attendance); err != nil {
		return nil, err
	}

	go s.broadcastHeadcount("checkin", employeeID)

	return attendance, nil
}

func (s *attendanceService) CheckOut(employeeID uuid.UUID, note string) (*model.Attendance, error) {
	open, err := s.attendanceRepo.FindOpen(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}

	now := s.now()
	open.CheckOutAt = &now
	open.WorkedMinutes = int(now.Sub(open.CheckInAt).Minutes())
	if note = strings.TrimSpace(note); note != "" {
		if open.Note != "" {
			open.Note += "\n"
		}
		open.Note += note
	}
	open.UpdatedBy = employeeID.String()

	if err := s.attendanceRepo.Update(open); err != nil {
		return nil, err
	}

	go s.broadcastHeadcount("checkout", employeeID)

	return open, nil
}

// closeStale closes a check-in left open on an earlier work date, at the end of that date.
func (s *attendanceService) closeStale(open *model.Attendance, now time.Time) error {
	day, err := time.ParseInLocation(model.DateLayout, open.WorkDate, s.loc)
	if err != nil {
		return err
	}
	end := day.AddDate(0, 0, 1)
	if end.After(now) {
		end = now
	}
	if end.Before(open.CheckInAt) {
		end = open.CheckInAt
	}
	open.CheckOutAt = &end
	open.WorkedMinutes = int(end.Sub(open.CheckInAt).Minutes())
	if open.Note != "" {
		open.Note += "\n"
	}
	open.Note += staleCheckoutNote
	open.UpdatedBy = "system"
	if err := s.attendanceRepo.Update(open); err != nil {
		return err
	}
	log.Warn().Str("employee_id", open.EmployeeID.String()).Str("work_date", open.WorkDate).Msg("closed stale check-in")
	return nil
}

func (s *attendanceService) GetAttendance(filter repository.AttendanceFilter, actor Actor) ([]model.Attendance, error) {
	filter.EmployeeID = actor.scopeEmployee(filter.EmployeeID)
	if filter.From != "" {
		if _, err := parseDate(filter.From); err != nil {
			return nil, err
		}
	}
	if filter.To != "" {
		if _, err := parseDate(filter.To); err != nil {
			return nil, err
		}
	}
	return s.attendanceRepo.FindAll(filter)
}

func (s *attendanceService) GetToday(actor Actor) ([]model.Attendance, error) {
	today := s.today()
	return s.GetAttendance(repository.AttendanceFilter{From: today, To: today}, actor)
}

func (s *attendanceService) activeEmployee(id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}
	return employee, nil
}

func (s *attendanceService) broadcastHeadcount(event string, employeeID uuid.UUID) {
	headcount, err := s.attendanceRepo.CountOpen(s.today())
	if err != nil {
		log.Error().Err(err).Msg("headcount query failed")
		return
	}
	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":        "attendance",
		"action":      event,
		"employee_id": employeeID,
		"headcount":   headcount,
	})
}

// onTime reports whether a check-in at local time t is within the grace period of the shift start.
// For overnight shifts a check-in after midnight but before the end belongs to a shift already running.
func onTime(shift *model.Shift, t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	start := timeToMinutes(shift.StartTime)
	if shift.IsOvernight && minute < timeToMinutes(shift.EndTime) {
		return false
	}
	return minute <= start+checkInGrace
}
