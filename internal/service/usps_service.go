package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/pkg/cache"
	"go-backoffice-api/pkg/export"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const uspsCachePrefix = "usps:"

type USPSService interface {
	CreateLabel(req *USPSLabelRequest, actor Actor) (*model.USPSTransaction, error)
	UpdateLabel(id uuid.UUID, req *USPSLabelRequest, actor Actor) (*model.USPSTransaction, error)
	DeleteLabel(id uuid.UUID, actor Actor) error
	GetLabel(id uuid.UUID, actor Actor) (*model.USPSTransaction, error)
	GetLabels(filter repository.USPSFilter, actor Actor) ([]model.USPSTransaction, error)
	Summary(filter repository.USPSFilter, actor Actor) (*model.USPSSummary, error)
	Export(filter repository.USPSFilter, format string, actor Actor) (*export.File, error)

	CreateGoal(req *USPSGoalRequest, actor Actor) (*model.USPSGoal, error)
	UpdateGoal(id uuid.UUID, req *USPSGoalRequest, actor Actor) (*model.USPSGoal, error)
	DeleteGoal(id uuid.UUID, actor Actor) error
	GetGoal(id uuid.UUID) (*model.USPSGoal, error)
	GetGoals(period string, includeInactive bool) ([]model.USPSGoal, error)
	Progress(ctx context.Context, period string) ([]model.GoalProgress, error)
}

type USPSLabelRequest struct {
	EmployeeID    string          `json:"employee_id" validate:"omitempty,uuid"`
	LabelDate     string          `json:"label_date"`
	LabelCount    int             `json:"label_count" validate:"min=1"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Service       string          `json:"service" validate:"max=64"`
	Reference     string          `json:"reference" validate:"max=100"`
	ScreenshotURL string          `json:"screenshot_url" validate:"omitempty,url"`
}

type USPSGoalRequest struct {
	Period        string          `json:"period" validate:"required,period"`
	EmployeeID    string          `json:"employee_id" validate:"omitempty,uuid"`
	TargetLabels  int             `json:"target_labels" validate:"min=1"`
	TargetRevenue decimal.Decimal `json:"target_revenue"`
	Notes         string          `json:"notes"`
}

type uspsService struct {
	repo         repository.USPSRepository
	employeeRepo repository.EmployeeRepository
	cache        *cache.Cache
	loc          *time.Location
}

func NewUSPSService(repo repository.USPSRepository, employeeRepo repository.EmployeeRepository, c *cache.Cache, loc *time.Location) USPSService {
	return &uspsService{repo: repo, employeeRepo: employeeRepo, cache: c, loc: loc}
}

// Labels

func (s *uspsService) CreateLabel(req *USPSLabelRequest, actor Actor) (*model.USPSTransaction, error) {
	tx := &model.USPSTransaction{}
	if err := s.applyLabel(req, tx, actor); err != nil {
		return nil, err
	}
	tx.IsActive = true
	tx.Audit(actor.String())
	if err := s.repo.CreateLabel(tx); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindLabelByID(tx.ID)
}

func (s *uspsService) UpdateLabel(id uuid.UUID, req *USPSLabelRequest, actor Actor) (*model.USPSTransaction, error) {
	tx, err := s.GetLabel(id, actor)
	if err != nil {
		return nil, err
	}
	if !tx.IsActive {
		return nil, ErrUSPSLabelNotFound
	}
	if err := s.applyLabel(req, tx, actor); err != nil {
		return nil, err
	}
	tx.UpdatedBy = actor.String()
	if err := s.repo.UpdateLabel(tx); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindLabelByID(id)
}

func (s *uspsService) DeleteLabel(id uuid.UUID, actor Actor) error {
	if _, err := s.GetLabel(id, actor); err != nil {
		return err
	}
	if err := s.repo.DeleteLabel(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUSPSLabelNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

func (s *uspsService) GetLabel(id uuid.UUID, actor Actor) (*model.USPSTransaction, error) {
	tx, err := s.repo.FindLabelByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUSPSLabelNotFound
		}
		return nil, err
	}
	if !actor.canAccess(tx.EmployeeID) {
		return nil, ErrForbidden
	}
	return tx, nil
}

func (s *uspsService) GetLabels(filter repository.USPSFilter, actor Actor) ([]model.USPSTransaction, error) {
	filter.EmployeeID = actor.scopeEmployee(filter.EmployeeID)
	return s.repo.FindLabels(filter)
}

func (s *uspsService) Summary(filter repository.USPSFilter, actor Actor) (*model.USPSSummary, error) {
	filter.IncludeInactive = false
	labels, err := s.GetLabels(filter, actor)
	if err != nil {
		return nil, err
	}
	summary := &model.USPSSummary{
		Revenue:    decimal.Zero,
		Cost:       decimal.Zero,
		ByEmployee: make(map[string]int),
		ByDay:      make(map[string]int),
	}
	for _, l := range labels {
		summary.Labels += l.LabelCount
		summary.Revenue = summary.Revenue.Add(l.Revenue)
		summary.Cost = summary.Cost.Add(l.Cost)
		name := l.EmployeeID.String()
		if l.Employee != nil {
			name = l.Employee.FullName
		}
		summary.ByEmployee[name] += l.LabelCount
		summary.ByDay[l.LabelDate.Format(model.DateLayout)] += l.LabelCount
	}
	summary.Profit = summary.Revenue.Sub(summary.Cost)
	return summary, nil
}

func (s *uspsService) Export(filter repository.USPSFilter, format string, actor Actor) (*export.File, error) {
	labels, err := s.GetLabels(filter, actor)
	if err != nil {
		return nil, err
	}
	table := export.Table{
		Sheet:   "USPS Labels",
		Headers: []string{"Date", "Employee", "Labels", "Revenue", "Cost", "Service", "Reference"},
	}
	for _, l := range labels {
		name := ""
		if l.Employee != nil {
			name = l.Employee.FullName
		}
		table.Rows = append(table.Rows, []string{
			l.LabelDate.Format(model.DateLayout),
			name,
			strconv.Itoa(l.LabelCount),
			l.Revenue.StringFixed(2),
			l.Cost.StringFixed(2),
			l.Service,
			l.Reference,
		})
	}
	return export.Render(table, "usps-labels", format)
}

// Goals

func (s *uspsService) CreateGoal(req *USPSGoalRequest, actor Actor) (*model.USPSGoal, error) {
	goal := &model.USPSGoal{}
	if err := s.applyGoal(req, goal); err != nil {
		return nil, err
	}
	goal.IsActive = true
	goal.Audit(actor.String())
	if err := s.repo.CreateGoal(goal); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindGoalByID(goal.ID)
}

func (s *uspsService) UpdateGoal(id uuid.UUID, req *USPSGoalRequest, actor Actor) (*model.USPSGoal, error) {
	goal, err := s.GetGoal(id)
	if err != nil {
		return nil, err
	}
	if !goal.IsActive {
		return nil, ErrGoalNotFound
	}
	if err := s.applyGoal(req, goal); err != nil {
		return nil, err
	}
	goal.UpdatedBy = actor.String()
	if err := s.repo.UpdateGoal(goal); err != nil {
		return nil, err
	}
	s.invalidate()
	return s.repo.FindGoalByID(id)
}

func (s *uspsService) DeleteGoal(id uuid.UUID, actor Actor) error {
	if err := s.repo.DeleteGoal(id, actor.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

func (s *uspsService) GetGoal(id uuid.UUID) (*model.USPSGoal, error) {
	goal, err := s.repo.FindGoalByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *uspsService) GetGoals(period string, includeInactive bool) ([]model.USPSGoal, error) {
	if period != "" {
		if _, _, err := periodBounds(period); err != nil {
			return nil, err
		}
	}
	return s.repo.FindGoals(period, includeInactive)
}

// Progress reports achieved labels and revenue against every active goal of the period.
// Team goals (no employee) count everyone's labels.
func (s *uspsService) Progress(ctx context.Context, period string) ([]model.GoalProgress, error) {
	from, to, err := periodBounds(period)
	if err != nil {
		return nil, err
	}

	key := uspsCachePrefix + "progress:" + period
	var cached []model.GoalProgress
	if found, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if found {
		return cached, nil
	}

	goals, err := s.repo.FindGoals(period, false)
	if err != nil {
		return nil, err
	}
	labels, err := s.repo.FindLabels(repository.USPSFilter{DateRange: repository.DateRange{From: &from, To: &to}})
	if err != nil {
		return nil, err
	}

	progress := make([]model.GoalProgress, 0, len(goals))
	for _, g := range goals {
		p := model.GoalProgress{Goal: g, AchievedRevenue: decimal.Zero}
		for _, l := range labels {
			if g.EmployeeID != nil && l.EmployeeID != *g.EmployeeID {
				continue
			}
			p.AchievedLabels += l.LabelCount
			p.AchievedRevenue = p.AchievedRevenue.Add(l.Revenue)
		}
		if g.TargetLabels > 0 {
			p.Percent = math.Round(float64(p.AchievedLabels)/float64(g.TargetLabels)*10000) / 100
		}
		p.Reached = p.AchievedLabels >= g.TargetLabels
		progress = append(progress, p)
	}

	if err := s.cache.SetJSON(ctx, key, progress); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return progress, nil
}

func (s *uspsService) invalidate() {
	s.cache.Invalidate(context.Background(), uspsCachePrefix)
}

func (s *uspsService) applyLabel(req *USPSLabelRequest, tx *model.USPSTransaction, actor Actor) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.Revenue.IsNegative() || req.Cost.IsNegative() {
		return ErrNegative
	}

	// Employees always record their own labels.
	employeeID := actor.ID
	if actor.IsAdmin() && req.EmployeeID != "" {
		employeeID, _ = uuid.Parse(req.EmployeeID)
	}
	if tx.ID != uuid.Nil && !actor.IsAdmin() {
		employeeID = tx.EmployeeID
	}
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationError("employee not found: %s", employeeID)
		}
		return err
	}
	if !employee.IsActive {
		return ErrEmployeeInactive
	}

	date, err := parseDateOr(req.LabelDate, localToday(s.loc))
	if err != nil {
		return err
	}
	tx.EmployeeID = employee.ID
	tx.Employee = nil
	tx.LabelDate = date
	tx.LabelCount = req.LabelCount
	tx.Revenue = req.Revenue
	tx.Cost = req.Cost
	tx.Service = req.Service
	tx.Reference = req.Reference
	tx.ScreenshotURL = req.ScreenshotURL
	return nil
}

func (s *uspsService) applyGoal(req *USPSGoalRequest, g *model.USPSGoal) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.TargetRevenue.IsNegative() {
		return ErrNegative
	}
	g.EmployeeID = nil
	g.Employee = nil
	if req.EmployeeID != "" {
		id, _ := uuid.Parse(req.EmployeeID)
		if _, err := s.employeeRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationError("employee not found: %s", req.EmployeeID)
			}
			return err
		}
		g.EmployeeID = &id
	}
	g.Period = req.Period
	g.TargetLabels = req.TargetLabels
	g.TargetRevenue = req.TargetRevenue
	g.Notes = req.Notes
	return nil
}
