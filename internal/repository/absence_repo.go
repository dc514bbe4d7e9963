// internal/repository/absence_repo.go
package repository

import (
	"database/sql"
	"errors"

	"absence-tracker/internal/models"

	"gorm.io/gorm"
)

var ErrAbsenceNotFound = errors.New("absence not found")

type AbsenceRepository interface {
	Insert(absence *models.Absence) error
	Update(absence *models.Absence) error
	Delete(absenceID string) error
	ReplaceForEmployee(employeeID string, absences []models.Absence) error
	DeleteAll() error
	GetByID(id string) (*models.Absence, error)
	GetByEmployeeID(employeeID string) ([]models.Absence, error)
	GetAll() (map[string][]models.Absence, error)
	GetCurrentAbsence(employeeID, date string) (*models.Absence, error)
	CheckPeriodConflict(employeeID, startDate, endDate string) (bool, error)
}

type GormAbsenceRepository struct {
	db *gorm.DB
}

func NewGormAbsenceRepository(db *gorm.DB) (*GormAbsenceRepository, error) {
	if err := db.AutoMigrate(&models.Absence{}); err != nil {
		return nil, err
	}
	return &GormAbsenceRepository{db: db}, nil
}

// Insert appends the absence after the employee's last stored position.
func (r *GormAbsenceRepository) Insert(absence *models.Absence) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos sql.NullInt64
		err := tx.Model(&models.Absence{}).
			Where("employee_id = ?", absence.EmployeeID).
			Select("MAX(position)").
			Row().
			Scan(&maxPos)
		if err != nil {
			return err
		}

		absence.Position = 0
		if maxPos.Valid {
			absence.Position = int(maxPos.Int64) + 1
		}
		return tx.Create(absence).Error
	})
}

// Update rewrites the editable fields; position and owner stay as stored.
func (r *GormAbsenceRepository) Update(absence *models.Absence) error {
	result := r.db.Model(&models.Absence{}).
		Where("id = ?", absence.ID).
		Updates(map[string]interface{}{
			"start_date": absence.StartDate,
			"end_date":   absence.EndDate,
			"type":       string(absence.Type),
			"reason":     absence.Reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAbsenceNotFound
	}
	return nil
}

func (r *GormAbsenceRepository) Delete(absenceID string) error {
	result := r.db.Where("id = ?", absenceID).Delete(&models.Absence{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAbsenceNotFound
	}
	return nil
}

// ReplaceForEmployee swaps the employee's whole sequence in one transaction.
func (r *GormAbsenceRepository) ReplaceForEmployee(employeeID string, absences []models.Absence) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.Absence{}).Error; err != nil {
			return err
		}
		if len(absences) == 0 {
			return nil
		}

		rows := make([]models.Absence, len(absences))
		for i, a := range absences {
			a.Position = i
			rows[i] = a
		}
		return tx.CreateInBatches(&rows, 100).Error
	})
}

func (r *GormAbsenceRepository) DeleteAll() error {
	return r.db.Exec("DELETE FROM absences").Error
}

func (r *GormAbsenceRepository) GetByID(id string) (*models.Absence, error) {
	var absence models.Absence
	err := r.db.Where("id = ?", id).First(&absence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

func (r *GormAbsenceRepository) GetByEmployeeID(employeeID string) ([]models.Absence, error) {
	var absences []models.Absence
	err := r.db.Where("employee_id = ?", employeeID).
		Order("position ASC").
		Find(&absences).Error
	return absences, err
}

// GetAll groups every stored absence by employee, each sequence in stored
// order.
func (r *GormAbsenceRepository) GetAll() (map[string][]models.Absence, error) {
	var absences []models.Absence
	err := r.db.Order("employee_id ASC").Order("position ASC").Find(&absences).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Absence)
	for _, a := range absences {
		grouped[a.EmployeeID] = append(grouped[a.EmployeeID], a)
	}
	return grouped, nil
}

// GetCurrentAbsence returns the first absence covering date, or nil.
func (r *GormAbsenceRepository) GetCurrentAbsence(employeeID, date string) (*models.Absence, error) {
	var absence models.Absence
	err := r.db.Where("employee_id = ? AND start_date <= ? AND end_date >= ?",
		employeeID, date, date).
		Order("position ASC").
		First(&absence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

func (r *GormAbsenceRepository) CheckPeriodConflict(employeeID, startDate, endDate string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Absence{}).
		Where("employee_id = ? AND start_date <= ? AND end_date >= ?",
			employeeID, endDate, startDate).
		Count(&count).Error
	return count > 0, err
}
