package service

import (
	"go-backoffice-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BonusRule pays PerLabel for every label above Threshold in a period.
type BonusRule struct {
	Threshold int
	PerLabel  decimal.Decimal
}

// CalculateSalary derives an employee's monthly compensation from the USPS labels they sold.
// Labels of other employees and inactive records are ignored.
func CalculateSalary(labels []model.USPSTransaction, employeeID uuid.UUID, base decimal.Decimal, rule BonusRule) model.Compensation {
	count := 0
	for _, l := range labels {
		if l.EmployeeID != employeeID || !l.IsActive {
			continue
		}
		count += l.LabelCount
	}

	bonus := decimal.Zero
	if extra := count - rule.Threshold; extra > 0 {
		bonus = rule.PerLabel.Mul(decimal.NewFromInt(int64(extra)))
	}

	return model.Compensation{
		EmployeeID: employeeID,
		Labels:     count,
		BaseSalary: base,
		Bonus:      bonus,
		Total:      base.Add(bonus),
	}
}
