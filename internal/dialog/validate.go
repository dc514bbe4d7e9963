package dialog

import (
	"errors"
	"time"

	"absence-tracker/internal/models"
	"absence-tracker/pkg/calendar"

	"github.com/go-playground/validator/v10"
)

const (
	MsgNoEmployee    = "No employee selected"
	MsgStartRequired = "Start date is required"
	MsgEndRequired   = "End date is required"
	MsgStartAfterEnd = "Start date must be before or equal to end date"
	MsgTypeRequired  = "Absence type is required"
)

type ValidationResult struct {
	IsValid bool
	Errors  []string
}

type formInput struct {
	Employee  *models.Employee   `validate:"required"`
	StartDate string             `validate:"required"`
	EndDate   string             `validate:"required"`
	Type      models.AbsenceType `validate:"required"`
}

var validate = validator.New()

// ValidateForm checks the current session without changing it. Every
// failing check is reported, in a fixed order.
func (c *Controller) ValidateForm() ValidationResult {
	missing := make(map[string]bool)
	err := validate.Struct(formInput{
		Employee:  c.selectedEmployee,
		StartDate: c.form.StartDate,
		EndDate:   c.form.EndDate,
		Type:      c.form.Type,
	})
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			missing[fe.Field()] = true
		}
	}

	var errs []string
	if missing["Employee"] {
		errs = append(errs, MsgNoEmployee)
	}
	if missing["StartDate"] {
		errs = append(errs, MsgStartRequired)
	}
	if missing["EndDate"] {
		errs = append(errs, MsgEndRequired)
	}
	if !missing["StartDate"] && !missing["EndDate"] && startAfterEnd(c.form.StartDate, c.form.EndDate) {
		errs = append(errs, MsgStartAfterEnd)
	}
	if missing["Type"] {
		errs = append(errs, MsgTypeRequired)
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// startAfterEnd compares chronologically; unparsable dates never compare
// as out of order.
func startAfterEnd(start, end string) bool {
	s, err := time.Parse(calendar.DateLayout, start)
	if err != nil {
		return false
	}
	e, err := time.Parse(calendar.DateLayout, end)
	if err != nil {
		return false
	}
	return s.After(e)
}
