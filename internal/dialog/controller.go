// internal/dialog/controller.go
package dialog

import (
	"fmt"
	"time"

	"absence-tracker/internal/models"
	"absence-tracker/internal/store"
	"absence-tracker/pkg/calendar"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// User-facing failure messages.
const (
	ErrSaveFailed      = "An error occurred while saving the absence"
	ErrDeleteFailed    = "An error occurred while deleting the absence"
	ErrNothingToDelete = "No absence selected for deletion"
	ErrAbsenceNotFound = "Absence not found"
)

type SaveResult struct {
	Success bool
	Errors  []string
	// Absence is the record written to the store, nil when nothing was
	// written.
	Absence *models.Absence
}

type DeleteResult struct {
	Success bool
	Error   string
}

// State is a snapshot of a dialog session.
type State struct {
	Open     bool
	Session  uint64
	Mode     models.DialogMode
	Employee *models.Employee
	Date     *time.Time
	Editing  *models.Absence
	Form     models.AbsenceForm
}

// Controller owns the transient state of one create/edit absence dialog.
// It is not safe for concurrent use; callers keep one controller per UI
// surface.
type Controller struct {
	open             bool
	selectedEmployee *models.Employee
	selectedDate     *time.Time
	mode             models.DialogMode
	editing          *models.Absence
	form             models.AbsenceForm
	session          uint64

	listeners []func(State)
	logger    logrus.FieldLogger
}

func NewController(logger logrus.FieldLogger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		mode:   models.DialogModeCreate,
		form:   models.BlankForm(),
		logger: logger,
	}
}

// OnChange registers fn to be called after the dialog opens, closes or its
// form changes.
func (c *Controller) OnChange(fn func(State)) {
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	st := c.State()
	for _, fn := range c.listeners {
		fn(st)
	}
}

// OpenDialog starts a session for employee on date. An absence covering
// the date switches the dialog into edit mode; the first match in sequence
// order wins.
func (c *Controller) OpenDialog(employee models.Employee, date time.Time, s store.Store) {
	emp := employee
	d := date
	c.selectedEmployee = &emp
	c.selectedDate = &d
	c.session++

	dateString := calendar.NormalizeDate(date)
	existing, found := store.FindContaining(s.Get(employee.ID), dateString)

	if found {
		c.mode = models.DialogModeEdit
		c.editing = &existing
		c.form = models.FormFrom(existing)
	} else {
		c.mode = models.DialogModeCreate
		c.editing = nil
		c.form = models.AbsenceForm{
			StartDate: dateString,
			EndDate:   dateString,
			Type:      models.DefaultAbsenceType,
		}
	}

	c.open = true
	c.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"date":        dateString,
		"mode":        c.mode,
		"session":     c.session,
	}).Debug("Absence dialog opened")
	c.notify()
}

// CloseDialog discards the session. Calling it on a closed dialog has no
// effect.
func (c *Controller) CloseDialog() {
	wasOpen := c.open

	c.open = false
	c.selectedEmployee = nil
	c.selectedDate = nil
	c.editing = nil
	c.form = models.BlankForm()

	if wasOpen {
		c.notify()
	}
}

// SaveAbsence validates the form and creates or updates the record in s.
func (c *Controller) SaveAbsence(s store.Store) SaveResult {
	validation := c.ValidateForm()
	if !validation.IsValid {
		return SaveResult{Errors: validation.Errors}
	}

	saved, err := c.persist(s)
	if err != nil {
		c.logger.WithError(err).WithField("employee_id", c.selectedEmployee.ID).Error("Error saving absence")
		return SaveResult{Errors: []string{ErrSaveFailed}}
	}

	c.CloseDialog()
	return SaveResult{Success: true, Absence: saved}
}

func (c *Controller) persist(s store.Store) (saved *models.Absence, err error) {
	defer func() {
		if r := recover(); r != nil {
			saved, err = nil, fmt.Errorf("panic while saving absence: %v", r)
		}
	}()

	employeeID := c.selectedEmployee.ID
	if !s.Has(employeeID) {
		if err := s.Set(employeeID, nil); err != nil {
			return nil, err
		}
	}

	if c.mode == models.DialogModeEdit && c.editing != nil {
		index := store.IndexOf(s.Get(employeeID), c.editing.ID)
		if index == -1 {
			// The target vanished after the dialog opened; nothing to update.
			c.logger.WithFields(logrus.Fields{
				"employee_id": employeeID,
				"absence_id":  c.editing.ID,
			}).Warn("Edited absence no longer in store, update skipped")
			return nil, nil
		}

		updated := *c.editing
		updated.StartDate = c.form.StartDate
		updated.EndDate = c.form.EndDate
		updated.Type = c.form.Type
		updated.Reason = c.form.Reason
		if err := s.Replace(employeeID, index, updated); err != nil {
			return nil, err
		}
		c.logger.Infof("Updated absence %s for %s", updated.ID, employeeID)
		return &updated, nil
	}

	created := models.Absence{
		ID:         newAbsenceID(employeeID),
		EmployeeID: employeeID,
		StartDate:  c.form.StartDate,
		EndDate:    c.form.EndDate,
		Type:       c.form.Type,
		Reason:     c.form.Reason,
	}
	if err := s.Append(employeeID, created); err != nil {
		return nil, err
	}
	c.logger.Infof("Created absence %s for %s", created.ID, employeeID)
	return &created, nil
}

// DeleteAbsence removes the record being edited from s.
func (c *Controller) DeleteAbsence(s store.Store) DeleteResult {
	if c.editing == nil || c.selectedEmployee == nil {
		return DeleteResult{Error: ErrNothingToDelete}
	}

	found, err := c.remove(s)
	if err != nil {
		c.logger.WithError(err).WithField("absence_id", c.editing.ID).Error("Error deleting absence")
		return DeleteResult{Error: ErrDeleteFailed}
	}
	if !found {
		return DeleteResult{Error: ErrAbsenceNotFound}
	}

	c.logger.Infof("Deleted absence %s for %s", c.editing.ID, c.selectedEmployee.ID)
	c.CloseDialog()
	return DeleteResult{Success: true}
}

func (c *Controller) remove(s store.Store) (found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			found, err = false, fmt.Errorf("panic while deleting absence: %v", r)
		}
	}()

	employeeID := c.selectedEmployee.ID
	index := store.IndexOf(s.Get(employeeID), c.editing.ID)
	if index == -1 {
		return false, nil
	}
	if err := s.Remove(employeeID, index); err != nil {
		return false, err
	}
	return true, nil
}

// newAbsenceID builds "abs-<employee>-<uuidv7>"; v7 keeps IDs time ordered.
func newAbsenceID(employeeID string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("abs-%s-%s", employeeID, id)
}
