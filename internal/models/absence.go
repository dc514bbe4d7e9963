// internal/models/absence.go
package models

import (
	"strconv"
	"strings"
)

type AbsenceType string

const (
	AbsenceTypeSickLeave          AbsenceType = "Sick Leave"
	AbsenceTypeVacation           AbsenceType = "Vacation"
	AbsenceTypePersonalLeave      AbsenceType = "Personal Leave"
	AbsenceTypeMedicalAppointment AbsenceType = "Medical Appointment"
	AbsenceTypeEmergencyLeave     AbsenceType = "Emergency Leave"
	AbsenceTypeTraining           AbsenceType = "Training"
	AbsenceTypeOther              AbsenceType = "Other"
)

// DefaultAbsenceType is used for new drafts.
const DefaultAbsenceType = AbsenceTypeSickLeave

var absenceTypes = []AbsenceType{
	AbsenceTypeSickLeave,
	AbsenceTypeVacation,
	AbsenceTypePersonalLeave,
	AbsenceTypeMedicalAppointment,
	AbsenceTypeEmergencyLeave,
	AbsenceTypeTraining,
	AbsenceTypeOther,
}

// AbsenceTypes returns the closed list of absence types in display order.
func AbsenceTypes() []AbsenceType {
	out := make([]AbsenceType, len(absenceTypes))
	copy(out, absenceTypes)
	return out
}

// IsValid reports whether t is one of the known literals.
func (t AbsenceType) IsValid() bool {
	for _, known := range absenceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseAbsenceType accepts a literal (case-insensitive) or a 1-based index
// into AbsenceTypes.
func ParseAbsenceType(s string) (AbsenceType, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(absenceTypes) {
			return absenceTypes[n-1], true
		}
		return "", false
	}
	for _, known := range absenceTypes {
		if strings.EqualFold(string(known), s) {
			return known, true
		}
	}
	return "", false
}

type Absence struct {
	ID         string      `gorm:"primaryKey;type:varchar(80)" json:"id"`
	EmployeeID string      `gorm:"not null;index" json:"employee_id" validate:"required"`
	StartDate  string      `gorm:"type:varchar(10);not null" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string      `gorm:"type:varchar(10);not null" json:"end_date" validate:"required,datetime=2006-01-02"`
	Type       AbsenceType `gorm:"type:varchar(32);not null" json:"type" validate:"required"`
	Reason     string      `json:"reason"`
	// Position keeps the per-employee sequence order across reloads.
	Position int `gorm:"not null;default:0" json:"-"`
}

func (Absence) TableName() string {
	return "absences"
}

// Contains reports whether date (YYYY-MM-DD) falls inside the absence,
// both ends inclusive.
func (a Absence) Contains(date string) bool {
	return date >= a.StartDate && date <= a.EndDate
}

// Overlaps reports whether [start, end] intersects the absence.
func (a Absence) Overlaps(start, end string) bool {
	return start <= a.EndDate && end >= a.StartDate
}

// AbsenceForm is the mutable draft edited while a dialog is open.
type AbsenceForm struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Type      AbsenceType `json:"type"`
	Reason    string      `json:"reason"`
}

// BlankForm returns the form a closed dialog resets to.
func BlankForm() AbsenceForm {
	return AbsenceForm{Type: DefaultAbsenceType}
}

// FormFrom copies the editable fields of an absence.
func FormFrom(a Absence) AbsenceForm {
	return AbsenceForm{
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Type:      a.Type,
		Reason:    a.Reason,
	}
}
