package dialog_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"absence-tracker/internal/dialog"
	"absence-tracker/internal/models"
	"absence-tracker/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var emp1 = models.Employee{ID: "emp-1", FirstName: "Ada", LastName: "Lovelace", PersonnelNumber: "P0001"}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newController() (*dialog.Controller, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return dialog.NewController(logger), hook
}

func seeded(t *testing.T, absences ...models.Absence) *store.Memory {
	t.Helper()
	s := store.NewMemory()
	for _, a := range absences {
		if err := s.Append(a.EmployeeID, a); err != nil {
			t.Fatalf("seed %s: %v", a.ID, err)
		}
	}
	return s
}

func TestOpenDialogCreateMode(t *testing.T) {
	c, _ := newController()
	s := store.NewMemory()

	c.OpenDialog(emp1, day("2024-03-10"), s)

	if !c.IsOpen() {
		t.Fatal("dialog not open")
	}
	if c.Mode() != models.DialogModeCreate || c.IsEditMode() {
		t.Errorf("mode = %s, want create", c.Mode())
	}
	if c.EditingAbsence() != nil {
		t.Error("EditingAbsence set in create mode")
	}
	want := models.AbsenceForm{StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeSickLeave}
	if got := c.Form(); got != want {
		t.Errorf("form = %+v, want %+v", got, want)
	}
	if c.Title() != "Create Absence" || c.SaveButtonText() != "Create" {
		t.Errorf("labels = %q/%q", c.Title(), c.SaveButtonText())
	}
	if emp := c.SelectedEmployee(); emp == nil || emp.ID != "emp-1" {
		t.Errorf("SelectedEmployee = %+v", emp)
	}
	if d := c.SelectedDate(); d == nil || !d.Equal(day("2024-03-10")) {
		t.Errorf("SelectedDate = %v", d)
	}
}

func TestOpenDialogNormalizesToUTCDay(t *testing.T) {
	c, _ := newController()
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:00 at UTC+3 is still the previous day in UTC.
	c.OpenDialog(emp1, time.Date(2024, 3, 11, 1, 0, 0, 0, loc), store.NewMemory())
	if got := c.Form().StartDate; got != "2024-03-10" {
		t.Errorf("StartDate = %q, want 2024-03-10", got)
	}
}

func TestOpenDialogEditMode(t *testing.T) {
	first := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-03-08", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation, Reason: "trip"}
	second := models.Absence{ID: "b", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-12", Type: models.AbsenceTypeTraining}
	s := seeded(t, first, second)

	tests := []struct {
		date   string
		wantID string
	}{
		{"2024-03-08", "a"},
		{"2024-03-10", "a"}, // overlap: first in sequence order
		{"2024-03-11", "b"},
		{"2024-03-12", "b"},
		{"2024-03-13", ""},
	}
	for _, tt := range tests {
		c, _ := newController()
		c.OpenDialog(emp1, day(tt.date), s)

		if tt.wantID == "" {
			if c.IsEditMode() {
				t.Errorf("%s: edit mode, want create", tt.date)
			}
			continue
		}
		if !c.IsEditMode() {
			t.Errorf("%s: create mode, want edit", tt.date)
			continue
		}
		got := c.EditingAbsence()
		if got == nil || got.ID != tt.wantID {
			t.Errorf("%s: editing = %+v, want %s", tt.date, got, tt.wantID)
			continue
		}
		if c.Form() != models.FormFrom(*got) {
			t.Errorf("%s: form %+v not copied from %+v", tt.date, c.Form(), *got)
		}
		if c.Title() != "Edit Absence" || c.SaveButtonText() != "Update" {
			t.Errorf("%s: labels = %q/%q", tt.date, c.Title(), c.SaveButtonText())
		}
	}
}

func TestOpenDialogIgnoresOtherEmployees(t *testing.T) {
	other := models.Absence{ID: "x", EmployeeID: "emp-2", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeOther}
	c, _ := newController()
	c.OpenDialog(emp1, day("2024-03-10"), seeded(t, other))
	if c.IsEditMode() {
		t.Error("absence of emp-2 opened emp-1 dialog in edit mode")
	}
}

func TestCloseDialogResetsEverything(t *testing.T) {
	a := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation, Reason: "x"}
	c, _ := newController()
	c.OpenDialog(emp1, day("2024-03-10"), seeded(t, a))

	for i := 0; i < 2; i++ {
		c.CloseDialog()
		if c.IsOpen() {
			t.Error("still open")
		}
		if c.SelectedEmployee() != nil || c.SelectedDate() != nil || c.EditingAbsence() != nil {
			t.Error("selection not cleared")
		}
		want := models.AbsenceForm{Type: models.AbsenceTypeSickLeave}
		if c.Form() != want {
			t.Errorf("form = %+v, want %+v", c.Form(), want)
		}
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name     string
		employee bool
		form     models.AbsenceForm
		want     []string
	}{
		{
			name:     "valid",
			employee: true,
			form:     models.AbsenceForm{StartDate: "2024-03-10", EndDate: "2024-03-12", Type: models.AbsenceTypeVacation},
		},
		{
			name:     "same day",
			employee: true,
			form:     models.AbsenceForm{StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation},
		},
		{
			name:     "start after end",
			employee: true,
			form:     models.AbsenceForm{StartDate: "2024-03-12", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation},
			want:     []string{dialog.MsgStartAfterEnd},
		},
		{
			name:     "missing start",
			employee: true,
			form:     models.AbsenceForm{EndDate: "2024-03-10", Type: models.AbsenceTypeVacation},
			want:     []string{dialog.MsgStartRequired},
		},
		{
			name:     "missing type",
			employee: true,
			form:     models.AbsenceForm{StartDate: "2024-03-10", EndDate: "2024-03-10"},
			want:     []string{dialog.MsgTypeRequired},
		},
		{
			name: "everything missing",
			form: models.AbsenceForm{},
			want: []string{dialog.MsgNoEmployee, dialog.MsgStartRequired, dialog.MsgEndRequired, dialog.MsgTypeRequired},
		},
		{
			name: "no employee and reversed dates",
			form: models.AbsenceForm{StartDate: "2024-03-12", EndDate: "2024-03-10", Type: models.AbsenceTypeOther},
			want: []string{dialog.MsgNoEmployee, dialog.MsgStartAfterEnd},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController()
			if tt.employee {
				c.OpenDialog(emp1, day("2024-01-01"), store.NewMemory())
			}
			c.SetForm(tt.form)
			before := c.State()

			res := c.ValidateForm()
			if res.IsValid != (len(tt.want) == 0) {
				t.Errorf("IsValid = %v with errors %v", res.IsValid, res.Errors)
			}
			if len(tt.want) == 0 && len(res.Errors) != 0 {
				t.Errorf("errors = %v, want none", res.Errors)
			}
			if len(tt.want) != 0 && !reflect.DeepEqual(res.Errors, tt.want) {
				t.Errorf("errors = %v, want %v", res.Errors, tt.want)
			}
			if !reflect.DeepEqual(c.State(), before) {
				t.Error("ValidateForm mutated state")
			}
		})
	}
}

func TestSaveAbsenceCreateScenario(t *testing.T) {
	c, _ := newController()
	s := store.NewMemory()

	c.OpenDialog(emp1, day("2024-03-10"), s)
	c.SetForm(models.AbsenceForm{StartDate: "2024-03-10", EndDate: "2024-03-12", Type: models.AbsenceTypeVacation, Reason: "trip"})

	res := c.SaveAbsence(s)
	if !res.Success {
		t.Fatalf("SaveAbsence failed: %v", res.Errors)
	}
	if c.IsOpen() {
		t.Error("dialog still open after save")
	}

	seq := s.Get("emp-1")
	if len(seq) != 1 {
		t.Fatalf("store has %d records, want 1", len(seq))
	}
	got := seq[0]
	if got.StartDate != "2024-03-10" || got.EndDate != "2024-03-12" || got.Type != models.AbsenceTypeVacation || got.Reason != "trip" {
		t.Errorf("stored record = %+v", got)
	}
	if got.EmployeeID != "emp-1" || !strings.HasPrefix(got.ID, "abs-emp-1-") {
		t.Errorf("stored ids = %q/%q", got.ID, got.EmployeeID)
	}
	if res.Absence == nil || *res.Absence != got {
		t.Errorf("result absence = %+v, want %+v", res.Absence, got)
	}

	// Re-opening on the same date edits the new record.
	c.OpenDialog(emp1, day("2024-03-11"), s)
	if !c.IsEditMode() || c.EditingAbsence().ID != got.ID {
		t.Fatalf("reopen: mode=%s editing=%+v", c.Mode(), c.EditingAbsence())
	}
	if c.Form() != models.FormFrom(got) {
		t.Errorf("reopen form = %+v", c.Form())
	}
}

func TestSaveAbsenceCreateAppendsInOrder(t *testing.T) {
	s := store.NewMemory()
	dates := []string{"2024-05-01", "2024-01-01", "2024-03-01"}
	seen := make(map[string]bool)
	for _, d := range dates {
		c, _ := newController()
		c.OpenDialog(emp1, day(d), s)
		if res := c.SaveAbsence(s); !res.Success {
			t.Fatalf("save %s: %v", d, res.Errors)
		}
	}
	seq := s.Get("emp-1")
	for i, d := range dates {
		if seq[i].StartDate != d {
			t.Errorf("seq[%d] = %s, want %s", i, seq[i].StartDate, d)
		}
		if seen[seq[i].ID] {
			t.Errorf("duplicate id %s", seq[i].ID)
		}
		seen[seq[i].ID] = true
	}
}

func TestSaveAbsenceValidationFailure(t *testing.T) {
	c, _ := newController()
	s := store.NewMemory()
	c.OpenDialog(emp1, day("2024-03-10"), s)
	c.SetStartDate("2024-03-12")

	res := c.SaveAbsence(s)
	if res.Success {
		t.Fatal("save succeeded with reversed dates")
	}
	if !reflect.DeepEqual(res.Errors, []string{dialog.MsgStartAfterEnd}) {
		t.Errorf("errors = %v", res.Errors)
	}
	if s.Has("emp-1") {
		t.Error("store mutated on validation failure")
	}
	if !c.IsOpen() {
		t.Error("dialog closed on validation failure")
	}
}

func TestSaveAbsenceWithoutEmployee(t *testing.T) {
	c, _ := newController()
	res := c.SaveAbsence(store.NewMemory())
	if res.Success || len(res.Errors) == 0 || res.Errors[0] != dialog.MsgNoEmployee {
		t.Errorf("result = %+v", res)
	}
}

func TestSaveAbsenceEditReplacesInPlace(t *testing.T) {
	a := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-01-01", EndDate: "2024-01-01", Type: models.AbsenceTypeOther}
	b := models.Absence{ID: "b", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeSickLeave}
	c2 := models.Absence{ID: "c", EmployeeID: "emp-1", StartDate: "2024-06-01", EndDate: "2024-06-01", Type: models.AbsenceTypeOther}
	s := seeded(t, a, b, c2)

	c, _ := newController()
	c.OpenDialog(emp1, day("2024-03-10"), s)
	c.SetEndDate("2024-03-14")
	c.SetType(models.AbsenceTypeMedicalAppointment)
	c.SetReason("surgery")

	res := c.SaveAbsence(s)
	if !res.Success {
		t.Fatalf("save: %v", res.Errors)
	}
	seq := s.Get("emp-1")
	if len(seq) != 3 {
		t.Fatalf("len = %d, want 3", len(seq))
	}
	want := models.Absence{ID: "b", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-14", Type: models.AbsenceTypeMedicalAppointment, Reason: "surgery"}
	if seq[1] != want {
		t.Errorf("seq[1] = %+v, want %+v", seq[1], want)
	}
	if seq[0] != a || seq[2] != c2 {
		t.Error("neighbours changed")
	}
}

func TestSaveAbsenceEditTargetVanished(t *testing.T) {
	a := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation}
	s := seeded(t, a)

	c, hook := newController()
	c.OpenDialog(emp1, day("2024-03-10"), s)
	if err := s.Remove("emp-1", 0); err != nil {
		t.Fatal(err)
	}

	res := c.SaveAbsence(s)
	if !res.Success {
		t.Fatalf("save = %+v, want success", res)
	}
	if res.Absence != nil {
		t.Errorf("Absence = %+v, want nil", res.Absence)
	}
	if len(s.Get("emp-1")) != 0 {
		t.Error("vanished record was recreated")
	}
	if c.IsOpen() {
		t.Error("dialog still open")
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Errorf("last log entry = %+v, want warning", e)
	}
}

// failingStore errors or panics on every mutation.
type failingStore struct {
	*store.Memory
	err   error
	panic bool
}

func (f failingStore) fail() error {
	if f.panic {
		panic("corrupted sequence")
	}
	return f.err
}

func (f failingStore) Set(string, []models.Absence) error { return f.fail() }
func (f failingStore) Append(string, models.Absence) error { return f.fail() }
func (f failingStore) Replace(string, int, models.Absence) error { return f.fail() }
func (f failingStore) Remove(string, int) error { return f.fail() }

func TestSaveAbsenceUnexpectedFailure(t *testing.T) {
	for _, panics := range []bool{false, true} {
		fs := failingStore{Memory: store.NewMemory(), err: errors.New("boom"), panic: panics}
		c, hook := newController()
		c.OpenDialog(emp1, day("2024-03-10"), fs)

		res := c.SaveAbsence(fs)
		if res.Success || !reflect.DeepEqual(res.Errors, []string{dialog.ErrSaveFailed}) {
			t.Errorf("panic=%v: result = %+v", panics, res)
		}
		if !c.IsOpen() {
			t.Errorf("panic=%v: dialog closed after failure", panics)
		}
		if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel || e.Data[logrus.ErrorKey] == nil {
			t.Errorf("panic=%v: cause not logged: %+v", panics, e)
		}
	}
}

func TestDeleteAbsence(t *testing.T) {
	a := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-01-01", EndDate: "2024-01-01", Type: models.AbsenceTypeOther}
	b := models.Absence{ID: "b", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeSickLeave}
	c2 := models.Absence{ID: "c", EmployeeID: "emp-1", StartDate: "2024-06-01", EndDate: "2024-06-01", Type: models.AbsenceTypeOther}
	other := models.Absence{ID: "d", EmployeeID: "emp-2", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeOther}
	s := seeded(t, a, b, c2, other)

	c, _ := newController()
	c.OpenDialog(emp1, day("2024-03-10"), s)
	res := c.DeleteAbsence(s)
	if !res.Success {
		t.Fatalf("delete: %s", res.Error)
	}
	if c.IsOpen() {
		t.Error("dialog still open")
	}
	seq := s.Get("emp-1")
	if len(seq) != 2 || seq[0] != a || seq[1] != c2 {
		t.Errorf("emp-1 = %+v", seq)
	}
	if got := s.Get("emp-2"); len(got) != 1 || got[0] != other {
		t.Errorf("emp-2 = %+v", got)
	}
}

func TestDeleteAbsenceWithoutTarget(t *testing.T) {
	c, _ := newController()
	s := store.NewMemory()
	if res := c.DeleteAbsence(s); res.Success || res.Error != dialog.ErrNothingToDelete {
		t.Errorf("closed dialog: %+v", res)
	}
	c.OpenDialog(emp1, day("2024-03-10"), s)
	if res := c.DeleteAbsence(s); res.Success || res.Error != dialog.ErrNothingToDelete {
		t.Errorf("create mode: %+v", res)
	}
}

func TestDeleteAbsenceNotFound(t *testing.T) {
	a := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation}
	s := seeded(t, a)
	c, _ := newController()
	c.OpenDialog(emp1, day("2024-03-10"), s)
	_ = s.Remove("emp-1", 0)

	res := c.DeleteAbsence(s)
	if res.Success || res.Error != dialog.ErrAbsenceNotFound {
		t.Errorf("result = %+v", res)
	}
	if !c.IsOpen() {
		t.Error("dialog closed on not found")
	}
}

func TestDeleteAbsenceUnexpectedFailure(t *testing.T) {
	a := models.Absence{ID: "a", EmployeeID: "emp-1", StartDate: "2024-03-10", EndDate: "2024-03-10", Type: models.AbsenceTypeVacation}
	for _, panics := range []bool{false, true} {
		fs := failingStore{Memory: seeded(t, a), err: errors.New("boom"), panic: panics}
		c, _ := newController()
		c.OpenDialog(emp1, day("2024-03-10"), fs)

		res := c.DeleteAbsence(fs)
		if res.Success || res.Error != dialog.ErrDeleteFailed {
			t.Errorf("panic=%v: result = %+v", panics, res)
		}
		if len(fs.Get("emp-1")) != 1 {
			t.Errorf("panic=%v: record removed", panics)
		}
	}
}

func TestOnChangeAndSessions(t *testing.T) {
	c, _ := newController()
	var states []dialog.State
	c.OnChange(func(st dialog.State) { states = append(states, st) })

	s := store.NewMemory()
	c.OpenDialog(emp1, day("2024-03-10"), s)
	c.SetReason("flu")
	c.CloseDialog()
	c.CloseDialog() // already closed: no notification
	c.OpenDialog(emp1, day("2024-03-11"), s)

	if len(states) != 4 {
		t.Fatalf("notifications = %d, want 4", len(states))
	}
	if !states[0].Open || states[0].Session != 1 {
		t.Errorf("open state = %+v", states[0])
	}
	if states[1].Form.Reason != "flu" {
		t.Errorf("form change state = %+v", states[1])
	}
	if states[2].Open {
		t.Error("close state still open")
	}
	if states[3].Session != 2 || c.Session() != 2 {
		t.Errorf("second session = %d", states[3].Session)
	}
}
