package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/ws"
	"go-backoffice-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrSameTimeStartEnd = errors.New("start time and end time cannot be the same")
	ErrInvalidWeekday   = errors.New("invalid day, use Monday..Sunday")
	ErrShiftNameTaken   = errors.New("an active shift with this name already exists")
)

type ShiftService interface {
	CreateShift(req *CreateShiftRequest, actor Actor) (*model.Shift, error)
	UpdateShift(shiftID uuid.UUID, req *UpdateShiftRequest, actor Actor) (*model.Shift, error)
	DeleteShift(shiftID uuid.UUID, actor Actor) error
	GetShiftByID(id uuid.UUID) (*model.Shift, error)
	GetShifts(activeOnly bool) ([]model.ShiftResponse, error)
	AssignEmployees(shiftID uuid.UUID, req *ShiftEmployeesRequest, actor Actor) (*model.Shift, error)
	UnassignEmployees(shiftID uuid.UUID, req *ShiftEmployeesRequest, actor Actor) (*model.Shift, error)
	GetUnassignedEmployees() ([]model.EmployeeResponse, error)
	GetShiftStats(shiftID uuid.UUID) (*model.ShiftStats, error)
	GetAllShiftStats() ([]model.ShiftStats, error)
}

type CreateShiftRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description"`
	StartTime   string   `json:"start_time" validate:"required,hhmm"` // HH:MM
	EndTime     string   `json:"end_time" validate:"required,hhmm"`   // HH:MM
	Days        []string `json:"days"`
	Color       string   `json:"color" validate:"omitempty,hexcolor6"`
}

type UpdateShiftRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description"`
	StartTime   *string   `json:"start_time" validate:"omitempty,hhmm"`
	EndTime     *string   `json:"end_time" validate:"omitempty,hhmm"`
	Days        *[]string `json:"days"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor6"`
	IsActive    *bool     `json:"is_active"`
}

type ShiftEmployeesRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,uuid"`
	Note        string   `json:"note"`
}

type shiftService struct {
	shiftRepo      repository.ShiftRepository
	attendanceRepo repository.AttendanceRepository
	wsHub          *ws.Hub
	loc            *time.Location
	now            func() time.Time
}

func NewShiftService(shiftRepo repository.ShiftRepository, attendanceRepo repository.AttendanceRepository, hub *ws.Hub, loc *time.Location) ShiftService {
	if loc == nil {
		loc = time.UTC
	}
	return &shiftService{
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		wsHub:          hub,
		loc:            loc,
		now:            time.Now,
	}
}

// isOvernight determines if the shift crosses midnight
func isOvernight(startTime, endTime string) bool {
	return timeToMinutes(endTime) <= timeToMinutes(startTime)
}

// timeToMinutes converts HH:MM to minutes since midnight
func timeToMinutes(timeStr string) int {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// normalizeDays validates weekday names case-insensitively and returns them
// deduplicated in Monday..Sunday order.
func normalizeDays(days []string) (model.StringList, error) {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		canon := strings.ToUpper(d[:1]) + strings.ToLower(d[1:])
		if !validator.IsWeekday(canon) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, d)
		}
		seen[canon] = true
	}
	out := make(model.StringList, 0, len(seen))
	for _, w := range model.Weekdays {
		if seen[w] {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *shiftService) CreateShift(req *CreateShiftRequest, actor Actor) (*model.Shift, error) {
	// 1. Validate payload (HH:MM times, color)
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Check start time != end time
	if req.StartTime == req.EndTime {
		return nil, ErrSameTimeStartEnd
	}

	// 3. Normalize days
	days, err := normalizeDays(req.Days)
	if err != nil {
		return nil, err
	}

	// 4. Name is unique among active shifts
	name := strings.TrimSpace(req.Name)
	taken, err := s.shiftRepo.NameTaken(name, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrShiftNameTaken
	}

	// 5. Create shift
	color := req.Color
	if color == "" {
		color = model.DefaultShiftColor
	}
	shift := &model.Shift{
		Name:        name,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Days:        days,
		Color:       color,
		IsOvernight: isOvernight(req.StartTime, req.EndTime),
	}
	shift.IsActive = true
	shift.Audit(actor.String())

	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}

	// 6. Reload with assignments
	return s.shiftRepo.FindByID(shift.ID)
}

func (s *shiftService) UpdateShift(shiftID uuid.UUID, req *UpdateShiftRequest, actor Actor) (*model.Shift, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// 1. Find existing shift
	shift, err := s.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	// 2. Merge updates
	startTime := shift.StartTime
	endTime := shift.EndTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	if startTime == endTime {
		return nil, ErrSameTimeStartEnd
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		taken, err := s.shiftRepo.NameTaken(name, &shiftID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrShiftNameTaken
		}
		shift.Name = name
	}
	if req.Description != nil {
		shift.Description = *req.Description
	}
	if req.Days != nil {
		days, err := normalizeDays(*req.Days)
		if err != nil {
			return nil, err
		}
		shift.Days = days
	}
	if req.Color != nil {
		shift.Color = *req.Color
	}

	shift.StartTime = startTime
	shift.EndTime = endTime
	shift.IsOvernight = isOvernight(startTime, endTime)
	shift.UpdatedBy = actor.String()

	// 3. Persist
	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}

	// Deactivating through update behaves like delete
	if req.IsActive != nil && !*req.IsActive {
		if err := s.DeleteShift(shiftID, actor); err != nil {
			return nil, err
		}
		return s.shiftRepo.FindByID(shiftID)
	}

	shift, err = s.shiftRepo.FindByID(shiftID)
	if err != nil {
		return nil, err
	}

	// 4. Tell the assigned employees their schedule changed
	go s.notifyShiftUpdated(shift)

	return shift, nil
}

func (s *shiftService) DeleteShift(shiftID uuid.UUID, actor Actor) error {
	// 1. Find existing shift
	shift, err := s.GetShiftByID(shiftID)
	if err != nil {
		return err
	}

	// 2. Soft delete and release assignments
	released, err := s.shiftRepo.Deactivate(shiftID, actor.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}

	// 3. Notify affected employees
	go s.notifyShiftCancelled(shift, released)

	return nil
}

// GetShiftByID returns an active shift; inactive or missing shifts are ErrShiftNotFound.
func (s *shiftService) GetShiftByID(id uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if !shift.IsActive {
		return nil, ErrShiftNotFound
	}
	return shift, nil
}

func (s *shiftService) GetShifts(activeOnly bool) ([]model.ShiftResponse, error) {
	shifts, err := s.shiftRepo.FindAll(activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = shifts[i].ToResponse()
	}
	return responses, nil
}

func (s *shiftService) AssignEmployees(shiftID uuid.UUID, req *ShiftEmployeesRequest, actor Actor) (*model.Shift, error) {
	// 1. Validate payload and target
	ids, err := parseEmployeeIDs(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetShiftByID(shiftID); err != nil {
		return nil, err
	}

	// 2. Assign in one transaction
	changes, err := s.shiftRepo.Assign(shiftID, ids, actor.String(), req.Note)
	if err != nil {
		var unavailable *repository.UnavailableEmployeesError
		if errors.As(err, &unavailable) {
			return nil, validationError("%s", unavailable.Error())
		}
		return nil, err
	}

	// 3. Reload
	shift, err := s.shiftRepo.FindByID(shiftID)
	if err != nil {
		return nil, err
	}

	// 4. Notify employees whose shift changed
	go s.notifyAssigned(shift, changes)

	return shift, nil
}

func (s *shiftService) UnassignEmployees(shiftID uuid.UUID, req *ShiftEmployeesRequest, actor Actor) (*model.Shift, error) {
	ids, err := parseEmployeeIDs(req)
	if err != nil {
		return nil, err
	}
	shift, err := s.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	removed, err := s.shiftRepo.Unassign(shiftID, ids)
	if err != nil {
		return nil, err
	}

	go s.notifyUnassigned(shift, removed)

	return s.shiftRepo.FindByID(shiftID)
}

func (s *shiftService) GetUnassignedEmployees() ([]model.EmployeeResponse, error) {
	employees, err := s.shiftRepo.FindUnassignedEmployees()
	if err != nil {
		return nil, err
	}
	responses := make([]model.EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = employees[i].ToResponse()
	}
	return responses, nil
}

func (s *shiftService) GetShiftStats(shiftID uuid.UUID) (*model.ShiftStats, error) {
	shift, err := s.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsFor(shift)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *shiftService) GetAllShiftStats() ([]model.ShiftStats, error) {
	shifts, err := s.shiftRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	out := make([]model.ShiftStats, 0, len(shifts))
	for i := range shifts {
		stats, err := s.statsFor(&shifts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
	}
	return out, nil
}

// statsFor computes today's headcount and punctuality of one shift.
func (s *shiftService) statsFor(shift *model.Shift) (model.ShiftStats, error) {
	today := s.now().In(s.loc)
	date := today.Format(model.DateLayout)

	records, err := s.attendanceRepo.FindAll(repository.AttendanceFilter{ShiftID: &shift.ID, From: date, To: date})
	if err != nil {
		return model.ShiftStats{}, err
	}

	// First check-in of each employee counts.
	first := make(map[uuid.UUID]model.Attendance, len(records))
	for _, r := range records {
		if prev, ok := first[r.EmployeeID]; !ok || r.CheckInAt.Before(prev.CheckInAt) {
			first[r.EmployeeID] = r
		}
	}

	stats := model.ShiftStats{
		ShiftID:        shift.ID,
		Name:           shift.Name,
		Date:           date,
		Headcount:      len(shift.Assignments),
		ScheduledToday: shift.ScheduledOn(today.Weekday()),
		CheckedInToday: len(first),
	}
	for _, r := range first {
		if r.OnTime {
			stats.OnTimeToday++
		}
	}
	stats.LateToday = stats.CheckedInToday - stats.OnTimeToday
	if stats.CheckedInToday > 0 {
		stats.ComplianceRate = float64(stats.OnTimeToday) / float64(stats.CheckedInToday)
	}
	return stats, nil
}

// parseEmployeeIDs validates the payload and returns the ids deduplicated, in request order.
func parseEmployeeIDs(req *ShiftEmployeesRequest) ([]uuid.UUID, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(req.EmployeeIDs))
	ids := make([]uuid.UUID, 0, len(req.EmployeeIDs))
	for _, raw := range req.EmployeeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, validationError("invalid employee id: %s", raw)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// WebSocket notification methods

func shiftWindow(shift *model.Shift) string {
	return fmt.Sprintf("%s (%s - %s)", shift.Name, shift.StartTime, shift.EndTime)
}

func (s *shiftService) notifyAssigned(shift *model.Shift, changes []repository.AssignmentChange) {
	for _, c := range changes {
		action := "shift_assigned"
		if c.FromShiftID != nil {
			action = "shift_moved"
		}
		s.wsHub.SendJSON([]string{c.EmployeeID.String()}, map[string]interface{}{
			"type":    "shift_notification",
			"action":  action,
			"message": fmt.Sprintf("You have been assigned to shift %s", shiftWindow(shift)),
			"shift":   shift.ToResponse(),
		})
	}
}

func (s *shiftService) notifyUnassigned(shift *model.Shift, removed []uuid.UUID) {
	if len(removed) == 0 {
		return
	}
	s.wsHub.SendJSON(uuidStrings(removed), map[string]interface{}{
		"type":     "shift_notification",
		"action":   "shift_unassigned",
		"message":  fmt.Sprintf("You have been removed from shift %s", shiftWindow(shift)),
		"shift_id": shift.ID,
	})
}

func (s *shiftService) notifyShiftUpdated(shift *model.Shift) {
	ids := make([]string, 0, len(shift.Assignments))
	for _, a := range shift.Assignments {
		ids = append(ids, a.EmployeeID.String())
	}
	s.wsHub.SendJSON(ids, map[string]interface{}{
		"type":    "shift_notification",
		"action":  "shift_updated",
		"message": fmt.Sprintf("Your shift has been updated: %s", shiftWindow(shift)),
		"shift":   shift.ToResponse(),
	})
}

func (s *shiftService) notifyShiftCancelled(shift *model.Shift, released []uuid.UUID) {
	s.wsHub.SendJSON(uuidStrings(released), map[string]interface{}{
		"type":     "shift_notification",
		"action":   "shift_cancelled",
		"message":  fmt.Sprintf("Your shift has been cancelled: %s", shiftWindow(shift)),
		"shift_id": shift.ID,
	})
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
