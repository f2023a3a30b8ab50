package repository

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceFilter struct {
	EmployeeID *uuid.UUID
	ShiftID    *uuid.UUID
	From       string // YYYY-MM-DD, inclusive
	To         string // YYYY-MM-DD, inclusive
}

type AttendanceRepository interface {
	Create(attendance *model.Attendance) error
	Update(attendance *model.Attendance) error
	FindOpen(employeeID uuid.UUID) (*model.Attendance, error)
	FindAll(filter AttendanceFilter) ([]model.Attendance, error)
	// CountOpen counts distinct employees checked in on workDate and not checked out.
	CountOpen(workDate string) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db}
}

func (r *attendanceRepo) Create(attendance *model.Attendance) error {
	return r.db.Omit("Employee").Create(attendance).Error
}

func (r *attendanceRepo) Update(attendance *model.Attendance) error {
	return save(r.db, attendance)
}

// FindOpen returns the latest attendance of the employee without a check-out.
func (r *attendanceRepo) FindOpen(employeeID uuid.UUID) (*model.Attendance, error) {
	var attendance model.Attendance
	if err := r.db.
		Where("employee_id = ? AND check_out_at IS NULL AND is_active = ?", employeeID, true).
		Order("check_in_at DESC").
		First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) FindAll(filter AttendanceFilter) ([]model.Attendance, error) {
	var records []model.Attendance
	q := r.db.Preload("Employee").Where("is_active = ?", true)
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ShiftID != nil {
		q = q.Where("shift_id = ?", *filter.ShiftID)
	}
	if filter.From != "" {
		q = q.Where("work_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("work_date <= ?", filter.To)
	}
	if err := q.Order("check_in_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) CountOpen(workDate string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).
		Where("work_date = ? AND check_out_at IS NULL AND is_active = ?", workDate, true).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}
