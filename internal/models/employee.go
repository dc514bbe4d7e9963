package models

import "fmt"

type Employee struct {
	ID              string `gorm:"primaryKey;type:varchar(32)" json:"id" validate:"required"`
	FirstName       string `gorm:"not null" json:"first_name" validate:"required"`
	LastName        string `json:"last_name"`
	PersonnelNumber string `gorm:"uniqueIndex;not null" json:"personnel_number" validate:"required"`
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// TableName overrides the gorm table name.
func (Employee) TableName() string {
	return "employees"
}
