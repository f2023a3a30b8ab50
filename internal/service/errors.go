package service

import (
	"errors"
	"fmt"

	"go-backoffice-api/pkg/validator"
)

// Error definitions
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("you can only access your own records")
	ErrInvalidID  = errors.New("invalid id format")

	ErrInvalidDate   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidPeriod = errors.New("invalid period format, use YYYY-MM")
	ErrDateRange     = errors.New("from date cannot be after to date")
	ErrNegative      = errors.New("amounts cannot be negative")

	ErrVendorNotFound        = errors.New("vendor not found")
	ErrVendorInactive        = errors.New("vendor is inactive")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrPayrollNotFound       = errors.New("payroll not found")
	ErrPayrollAlreadyPaid    = errors.New("payroll is already paid")
	ErrPayrollExists         = errors.New("a non-draft payroll already exists for this employee and period")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderNumberTaken      = errors.New("order number already exists")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrClientNotFound        = errors.New("reseller client not found")
	ErrClientInactive        = errors.New("reseller client is inactive")
	ErrResellerLabelNotFound = errors.New("reseller label not found")
	ErrResellerTxNotFound    = errors.New("reseller transaction not found")
	ErrUSPSLabelNotFound     = errors.New("usps label not found")
	ErrGoalNotFound          = errors.New("usps goal not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrNotOwnTransaction     = errors.New("you can only modify your own transactions")
	ErrTransactionReviewed   = errors.New("transaction is no longer pending")
)

// ValidationError carries a human readable validation message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// validate runs struct validation and converts the first failure into a ValidationError.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: validator.Message(errs)}
	}
	return nil
}
