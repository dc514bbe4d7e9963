// internal/repository/employee_repo.go
package repository

import (
	"errors"

	"absence-tracker/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	BulkCreate(employees []models.Employee) error
	GetByID(id string) (*models.Employee, error)
	GetAll() ([]models.Employee, error)
	DeleteAll() error
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}
	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *GormEmployeeRepository) BulkCreate(employees []models.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&employees, 100).Error
}

// GetByID returns nil, nil when the employee does not exist.
func (r *GormEmployeeRepository) GetByID(id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("id = ?", id).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Order("personnel_number ASC").Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM employees").Error
}
