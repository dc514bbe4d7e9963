// internal/service/absence.go
package service

import (
	"fmt"
	"sort"

	"absence-tracker/internal/models"
	"absence-tracker/internal/repository"
	"absence-tracker/internal/sample"
	"absence-tracker/internal/store"

	"github.com/sirupsen/logrus"
)

// AbsenceService owns the shared absence store and the employee directory.
type AbsenceService struct {
	store        store.Store
	employeeRepo repository.EmployeeRepository
	absenceRepo  repository.AbsenceRepository
	generator    *sample.Generator
	employees    map[string]models.Employee
	logger       *logrus.Logger
}

// NewAbsenceService keeps everything in memory.
func NewAbsenceService(generator *sample.Generator, logger *logrus.Logger) *AbsenceService {
	return newAbsenceService(store.NewMemory(), nil, nil, generator, logger)
}

// NewPersistentAbsenceService mirrors every change into the repositories.
func NewPersistentAbsenceService(
	employeeRepo repository.EmployeeRepository,
	absenceRepo repository.AbsenceRepository,
	generator *sample.Generator,
	logger *logrus.Logger,
) *AbsenceService {
	s := store.NewWriteThrough(store.NewMemory(), absenceRepo)
	return newAbsenceService(s, employeeRepo, absenceRepo, generator, logger)
}

func newAbsenceService(
	s store.Store,
	employeeRepo repository.EmployeeRepository,
	absenceRepo repository.AbsenceRepository,
	generator *sample.Generator,
	logger *logrus.Logger,
) *AbsenceService {
	if logger == nil {
		logger = logrus.New()
	}
	if generator == nil {
		generator = sample.NewGenerator(nil, 0)
	}
	return &AbsenceService{
		store:        s,
		employeeRepo: employeeRepo,
		absenceRepo:  absenceRepo,
		generator:    generator,
		employees:    make(map[string]models.Employee),
		logger:       logger,
	}
}

func (s *AbsenceService) Store() store.Store {
	return s.store
}

func (s *AbsenceService) Logger() *logrus.Logger {
	return s.logger
}

// LoadFromDatabase replaces in-memory state with what the repositories hold.
// It returns the number of employees loaded.
func (s *AbsenceService) LoadFromDatabase() (int, error) {
	if s.employeeRepo == nil || s.absenceRepo == nil {
		return 0, fmt.Errorf("service has no database")
	}

	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load employees: %w", err)
	}
	grouped, err := s.absenceRepo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load absences: %w", err)
	}
	mem, err := store.Load(grouped)
	if err != nil {
		return 0, fmt.Errorf("stored absences are inconsistent: %w", err)
	}

	s.store = store.NewWriteThrough(mem, s.absenceRepo)
	s.setEmployees(employees)
	s.logger.Infof("Loaded %d employees and %d absence sequences", len(employees), len(grouped))
	return len(employees), nil
}

// GenerateSampleData discards current data and generates n employees with
// random absences.
func (s *AbsenceService) GenerateSampleData(n int) error {
	if s.employeeRepo != nil {
		if err := s.employeeRepo.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear employees: %w", err)
		}
	}

	employees, err := s.generator.Generate(n, s.store)
	if err != nil {
		return fmt.Errorf("failed to generate sample data: %w", err)
	}

	if s.employeeRepo != nil {
		if err := s.employeeRepo.BulkCreate(employees); err != nil {
			return fmt.Errorf("failed to save employees: %w", err)
		}
	}

	s.setEmployees(employees)
	s.logger.Infof("Generated %d employees for %d", len(employees), s.generator.Year())
	return nil
}

func (s *AbsenceService) setEmployees(employees []models.Employee) {
	s.employees = make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		s.employees[e.ID] = e
	}
}

// Employees returns the directory ordered by personnel number.
func (s *AbsenceService) Employees() []models.Employee {
	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PersonnelNumber < out[j].PersonnelNumber
	})
	return out
}

// Employee looks up by ID or personnel number.
func (s *AbsenceService) Employee(key string) (models.Employee, bool) {
	if e, ok := s.employees[key]; ok {
		return e, true
	}
	for _, e := range s.employees {
		if e.PersonnelNumber == key {
			return e, true
		}
	}
	return models.Employee{}, false
}

// Absences returns the employee's sequence in store order.
func (s *AbsenceService) Absences(employeeID string) []models.Absence {
	return s.store.Get(employeeID)
}

// Overlaps lists other absences of the same employee intersecting a.
func (s *AbsenceService) Overlaps(a models.Absence) []models.Absence {
	return store.Overlapping(s.store.Get(a.EmployeeID), a.StartDate, a.EndDate, a.ID)
}
