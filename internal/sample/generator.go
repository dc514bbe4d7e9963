// internal/sample/generator.go
package sample

import (
	"fmt"
	"math/rand/v2"
	"time"

	"absence-tracker/internal/models"
	"absence-tracker/internal/store"
	"absence-tracker/pkg/calendar"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultEmployees = 50
	RandomReason     = "Random generated absence"
)

// Generator produces demo employees and absences.
type Generator struct {
	rnd      *rand.Rand
	year     int
	validate *validator.Validate
}

// NewGenerator uses rnd for every random choice; nil means a time-seeded
// source. year <= 0 selects the current year.
func NewGenerator(rnd *rand.Rand, year int) *Generator {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if year <= 0 {
		year = calendar.CurrentYear()
	}
	return &Generator{rnd: rnd, year: year, validate: validator.New()}
}

func (g *Generator) Year() int {
	return g.year
}

// Employees returns emp-1..emp-n with random names.
func (g *Generator) Employees(n int) []models.Employee {
	employees := make([]models.Employee, 0, n)
	for i := 0; i < n; i++ {
		employees = append(employees, models.Employee{
			ID:              fmt.Sprintf("emp-%d", i+1),
			FirstName:       firstNames[g.rnd.IntN(len(firstNames))],
			LastName:        lastNames[g.rnd.IntN(len(lastNames))],
			PersonnelNumber: fmt.Sprintf("P%04d", i+1),
		})
	}
	return employees
}

// Absences appends 2-9 absences of 1-5 days to every employee's sequence.
func (g *Generator) Absences(employees []models.Employee, s store.Store) error {
	types := models.AbsenceTypes()

	for _, employee := range employees {
		numAbsences := g.rnd.IntN(8) + 2

		for i := 0; i < numAbsences; i++ {
			start := time.Date(g.year, time.Month(g.rnd.IntN(12)+1), g.rnd.IntN(28)+1, 0, 0, 0, 0, time.UTC)
			duration := g.rnd.IntN(5) + 1
			end := start.AddDate(0, 0, duration-1)

			reason := ""
			if g.rnd.Float64() > 0.7 {
				reason = RandomReason
			}

			absence := models.Absence{
				ID:         fmt.Sprintf("abs-%s-%d", employee.ID, i),
				EmployeeID: employee.ID,
				StartDate:  start.Format(calendar.DateLayout),
				EndDate:    end.Format(calendar.DateLayout),
				Type:       types[g.rnd.IntN(len(types))],
				Reason:     reason,
			}
			if err := g.validate.Struct(absence); err != nil {
				return fmt.Errorf("generated invalid absence %s: %w", absence.ID, err)
			}

			if !s.Has(employee.ID) {
				if err := s.Set(employee.ID, nil); err != nil {
					return err
				}
			}
			if err := s.Append(employee.ID, absence); err != nil {
				return fmt.Errorf("failed to store absence %s: %w", absence.ID, err)
			}
		}
	}
	return nil
}

// Generate clears s and fills it with n fresh employees and their absences.
func (g *Generator) Generate(n int, s store.Store) ([]models.Employee, error) {
	if err := s.Reset(); err != nil {
		return nil, err
	}
	employees := g.Employees(n)
	if err := g.Absences(employees, s); err != nil {
		return nil, err
	}
	return employees, nil
}
