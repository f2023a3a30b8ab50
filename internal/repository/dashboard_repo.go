package repository

import (
	"time"

	"go-backoffice-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyActivity is one day of the activity chart.
type DailyActivity struct {
	Date       string `json:"date"`
	CheckIns   int    `json:"check_ins"`
	USPSLabels int    `json:"usps_labels"`
	Orders     int    `json:"orders"`
}

// DashboardStats is the back-office overview.
type DashboardStats struct {
	ActiveEmployees     int64           `json:"active_employees"`
	CheckedInNow        int64           `json:"checked_in_now"`
	PendingTransactions int64           `json:"pending_transactions"`
	MonthExpenses       decimal.Decimal `json:"month_expenses"`
	MonthOrderRevenue   decimal.Decimal `json:"month_order_revenue"`
	MonthUSPSLabels     int64           `json:"month_usps_labels"`
	MonthResellerLabels int64           `json:"month_reseller_labels"`
}

type DashboardRepository interface {
	GetDashboardStats(today string, monthStart, monthEnd time.Time) (*DashboardStats, error)
	GetDailyActivity(startDate, endDate time.Time) ([]DailyActivity, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) GetDashboardStats(today string, monthStart, monthEnd time.Time) (*DashboardStats, error) {
	stats := DashboardStats{MonthExpenses: decimal.Zero, MonthOrderRevenue: decimal.Zero}

	if err := r.db.Model(&model.Employee{}).Where("is_active = ?", true).Count(&stats.ActiveEmployees).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Attendance{}).
		Where("work_date = ? AND check_out_at IS NULL AND is_active = ?", today, true).
		Distinct("employee_id").
		Count(&stats.CheckedInNow).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.PaymentTransaction{}).
		Where("status = ? AND is_active = ?", model.PaymentPending, true).
		Count(&stats.PendingTransactions).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.MonthExpenses, err = r.sumDecimal(&model.Expense{}, "amount", "expense_date", monthStart, monthEnd, ""); err != nil {
		return nil, err
	}
	if stats.MonthOrderRevenue, err = r.sumDecimal(&model.Order{}, "amount", "order_date", monthStart, monthEnd, model.OrderCancelled); err != nil {
		return nil, err
	}
	if stats.MonthUSPSLabels, err = r.sumInt(&model.USPSTransaction{}, "label_count", "label_date", monthStart, monthEnd); err != nil {
		return nil, err
	}
	if stats.MonthResellerLabels, err = r.sumInt(&model.ResellerLabel{}, "label_count", "label_date", monthStart, monthEnd); err != nil {
		return nil, err
	}

	return &stats, nil
}

// sumDecimal adds up a money column row by row so the result keeps decimal precision on every dialect.
func (r *dashboardRepo) sumDecimal(table interface{}, column, dateColumn string, from, to time.Time, skipStatus string) (decimal.Decimal, error) {
	q := r.db.Model(table).Select(column).
		Where("is_active = ?", true).
		Where(dateColumn+" BETWEEN ? AND ?", from, to)
	if skipStatus != "" {
		q = q.Where("status <> ?", skipStatus)
	}
	rows, err := q.Rows()
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, rows.Err()
}

func (r *dashboardRepo) sumInt(table interface{}, column, dateColumn string, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.Model(table).
		Select("COALESCE(SUM("+column+"), 0)").
		Where("is_active = ?", true).
		Where(dateColumn+" BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	return total, err
}

// GetDailyActivity buckets check-ins, USPS labels and orders per day between the two dates inclusive.
func (r *dashboardRepo) GetDailyActivity(startDate, endDate time.Time) ([]DailyActivity, error) {
	days := make(map[string]*DailyActivity)
	var order []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		key := d.Format(model.DateLayout)
		days[key] = &DailyActivity{Date: key}
		order = append(order, key)
	}

	// Check-ins are keyed by their work date string
	var checkIns []model.Attendance
	if err := r.db.Select("work_date").
		Where("is_active = ? AND work_date BETWEEN ? AND ?", true, startDate.Format(model.DateLayout), endDate.Format(model.DateLayout)).
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	for _, a := range checkIns {
		if d, ok := days[a.WorkDate]; ok {
			d.CheckIns++
		}
	}

	var labels []model.USPSTransaction
	if err := r.db.Select("label_date", "label_count").
		Where("is_active = ? AND label_date BETWEEN ? AND ?", true, startDate, endDate).
		Find(&labels).Error; err != nil {
		return nil, err
	}
	for _, l := range labels {
		if d, ok := days[l.LabelDate.Format(model.DateLayout)]; ok {
			d.USPSLabels += l.LabelCount
		}
	}

	var orders []model.Order
	if err := r.db.Select("order_date").
		Where("is_active = ? AND order_date BETWEEN ? AND ?", true, startDate, endDate).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	for _, o := range orders {
		if d, ok := days[o.OrderDate.Format(model.DateLayout)]; ok {
			d.Orders++
		}
	}

	results := make([]DailyActivity, 0, len(order))
	for _, key := range order {
		results = append(results, *days[key])
	}
	return results, nil
}
