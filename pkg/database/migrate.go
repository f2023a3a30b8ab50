package database

import (
	"go-backoffice-api/internal/model"

	"gorm.io/gorm"
)

// Models lists every table the API owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Employee{},
		&model.Shift{},
		&model.ShiftAssignment{},
		&model.ShiftStatus{},
		&model.Attendance{},
		&model.Vendor{},
		&model.Expense{},
		&model.Payroll{},
		&model.Order{},
		&model.ResellerClient{},
		&model.ResellerLabel{},
		&model.ResellerTransaction{},
		&model.USPSTransaction{},
		&model.USPSGoal{},
		&model.PaymentTransaction{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
