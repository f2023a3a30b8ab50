package service

import (
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
)

type DashboardService interface {
	GetDailyActivity(days int) ([]repository.DailyActivity, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
	loc  *time.Location
}

func NewDashboardService(repo repository.DashboardRepository, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{repo: repo, loc: loc}
}

// GetDailyActivity covers the last `days` calendar days including today.
func (s *dashboardService) GetDailyActivity(days int) ([]repository.DailyActivity, error) {
	endDate := s.localDate()
	startDate := endDate.AddDate(0, 0, -(days - 1))

	return s.repo.GetDailyActivity(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	today := s.localDate()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return s.repo.GetDashboardStats(today.Format(model.DateLayout), monthStart, monthEnd)
}

// localDate is today's calendar date in the business timezone, as UTC midnight.
func (s *dashboardService) localDate() time.Time {
	return localToday(s.loc)
}
