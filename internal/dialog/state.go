package dialog

import (
	"time"

	"absence-tracker/internal/models"
)

func (c *Controller) IsOpen() bool {
	return c.open
}

func (c *Controller) Mode() models.DialogMode {
	return c.mode
}

func (c *Controller) IsEditMode() bool {
	return c.mode == models.DialogModeEdit
}

// Title is the dialog heading for the current mode.
func (c *Controller) Title() string {
	if c.mode == models.DialogModeCreate {
		return "Create Absence"
	}
	return "Edit Absence"
}

// SaveButtonText labels the confirm action for the current mode.
func (c *Controller) SaveButtonText() string {
	if c.mode == models.DialogModeCreate {
		return "Create"
	}
	return "Update"
}

// Session increments on every OpenDialog.
func (c *Controller) Session() uint64 {
	return c.session
}

func (c *Controller) SelectedEmployee() *models.Employee {
	if c.selectedEmployee == nil {
		return nil
	}
	emp := *c.selectedEmployee
	return &emp
}

func (c *Controller) SelectedDate() *time.Time {
	if c.selectedDate == nil {
		return nil
	}
	d := *c.selectedDate
	return &d
}

func (c *Controller) EditingAbsence() *models.Absence {
	if c.editing == nil {
		return nil
	}
	a := *c.editing
	return &a
}

func (c *Controller) Form() models.AbsenceForm {
	return c.form
}

func (c *Controller) SetForm(form models.AbsenceForm) {
	c.form = form
	c.notify()
}

func (c *Controller) SetStartDate(date string) {
	c.form.StartDate = date
	c.notify()
}

func (c *Controller) SetEndDate(date string) {
	c.form.EndDate = date
	c.notify()
}

func (c *Controller) SetType(t models.AbsenceType) {
	c.form.Type = t
	c.notify()
}

func (c *Controller) SetReason(reason string) {
	c.form.Reason = reason
	c.notify()
}

func (c *Controller) State() State {
	return State{
		Open:     c.open,
		Session:  c.session,
		Mode:     c.mode,
		Employee: c.SelectedEmployee(),
		Date:     c.SelectedDate(),
		Editing:  c.EditingAbsence(),
		Form:     c.form,
	}
}
