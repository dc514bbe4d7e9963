package models_test

import (
	"testing"

	"absence-tracker/internal/models"
)

func TestAbsenceTypesOrder(t *testing.T) {
	want := []models.AbsenceType{
		"Sick Leave", "Vacation", "Personal Leave", "Medical Appointment",
		"Emergency Leave", "Training", "Other",
	}
	got := models.AbsenceTypes()
	if len(got) != len(want) {
		t.Fatalf("AbsenceTypes() = %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AbsenceTypes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got[0] = "Mutated"
	if models.AbsenceTypes()[0] != models.AbsenceTypeSickLeave {
		t.Error("AbsenceTypes returned shared slice")
	}
}

func TestParseAbsenceType(t *testing.T) {
	tests := []struct {
		in   string
		want models.AbsenceType
		ok   bool
	}{
		{"Vacation", models.AbsenceTypeVacation, true},
		{"medical appointment", models.AbsenceTypeMedicalAppointment, true},
		{" training ", models.AbsenceTypeTraining, true},
		{"1", models.AbsenceTypeSickLeave, true},
		{"7", models.AbsenceTypeOther, true},
		{"0", "", false},
		{"8", "", false},
		{"holiday", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := models.ParseAbsenceType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAbsenceType(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAbsenceContainsAndOverlaps(t *testing.T) {
	a := models.Absence{StartDate: "2024-03-10", EndDate: "2024-03-12"}
	for date, want := range map[string]bool{
		"2024-03-09": false,
		"2024-03-10": true,
		"2024-03-11": true,
		"2024-03-12": true,
		"2024-03-13": false,
	} {
		if got := a.Contains(date); got != want {
			t.Errorf("Contains(%s) = %v, want %v", date, got, want)
		}
	}

	if !a.Overlaps("2024-03-12", "2024-03-20") {
		t.Error("touching end should overlap")
	}
	if a.Overlaps("2024-03-13", "2024-03-20") {
		t.Error("disjoint range should not overlap")
	}
}

func TestBlankForm(t *testing.T) {
	want := models.AbsenceForm{StartDate: "", EndDate: "", Type: models.AbsenceTypeSickLeave, Reason: ""}
	if got := models.BlankForm(); got != want {
		t.Errorf("BlankForm() = %+v, want %+v", got, want)
	}
	if !models.AbsenceTypeOther.IsValid() || models.AbsenceType("x").IsValid() {
		t.Error("IsValid mismatch")
	}
}

func TestEmployeeFullName(t *testing.T) {
	e := models.Employee{FirstName: "Grace", LastName: "Hopper"}
	if e.FullName() != "Grace Hopper" {
		t.Errorf("FullName = %q", e.FullName())
	}
	e.LastName = ""
	if e.FullName() != "Grace" {
		t.Errorf("FullName without last name = %q", e.FullName())
	}
}
