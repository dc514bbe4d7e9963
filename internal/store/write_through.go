package store

import (
	"fmt"
	"sync"

	"absence-tracker/internal/models"
)

// Persister mirrors store mutations into durable storage.
type Persister interface {
	Insert(absence *models.Absence) error
	Update(absence *models.Absence) error
	Delete(absenceID string) error
	ReplaceForEmployee(employeeID string, absences []models.Absence) error
	DeleteAll() error
}

// WriteThrough applies every mutation to the persister first and to memory
// only when that succeeded.
type WriteThrough struct {
	mu        sync.Mutex
	mem       *Memory
	persister Persister
}

func NewWriteThrough(mem *Memory, persister Persister) *WriteThrough {
	if mem == nil {
		mem = NewMemory()
	}
	return &WriteThrough{mem: mem, persister: persister}
}

func (w *WriteThrough) Has(employeeID string) bool {
	return w.mem.Has(employeeID)
}

func (w *WriteThrough) Get(employeeID string) []models.Absence {
	return w.mem.Get(employeeID)
}

func (w *WriteThrough) EmployeeIDs() []string {
	return w.mem.EmployeeIDs()
}

func (w *WriteThrough) Set(employeeID string, absences []models.Absence) error {
	for _, a := range absences {
		if a.EmployeeID != employeeID {
			return ErrEmployeeMismatch
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.persister.ReplaceForEmployee(employeeID, absences); err != nil {
		return fmt.Errorf("persist absences of %s: %w", employeeID, err)
	}
	return w.mem.Set(employeeID, absences)
}

func (w *WriteThrough) Append(employeeID string, absence models.Absence) error {
	if absence.EmployeeID != employeeID {
		return ErrEmployeeMismatch
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.persister.Insert(&absence); err != nil {
		return fmt.Errorf("persist absence %s: %w", absence.ID, err)
	}
	return w.mem.Append(employeeID, absence)
}

func (w *WriteThrough) Replace(employeeID string, index int, absence models.Absence) error {
	if absence.EmployeeID != employeeID {
		return ErrEmployeeMismatch
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	seq := w.mem.Get(employeeID)
	if index < 0 || index >= len(seq) {
		return ErrIndexOutOfRange
	}

	old := seq[index]
	if old.ID == absence.ID {
		if err := w.persister.Update(&absence); err != nil {
			return fmt.Errorf("persist absence %s: %w", absence.ID, err)
		}
	} else {
		if err := w.persister.Delete(old.ID); err != nil {
			return fmt.Errorf("remove absence %s: %w", old.ID, err)
		}
		if err := w.persister.Insert(&absence); err != nil {
			return fmt.Errorf("persist absence %s: %w", absence.ID, err)
		}
	}
	return w.mem.Replace(employeeID, index, absence)
}

func (w *WriteThrough) Remove(employeeID string, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	seq := w.mem.Get(employeeID)
	if index < 0 || index >= len(seq) {
		return ErrIndexOutOfRange
	}
	if err := w.persister.Delete(seq[index].ID); err != nil {
		return fmt.Errorf("remove absence %s: %w", seq[index].ID, err)
	}
	return w.mem.Remove(employeeID, index)
}

func (w *WriteThrough) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.persister.DeleteAll(); err != nil {
		return fmt.Errorf("clear absences: %w", err)
	}
	return w.mem.Reset()
}
