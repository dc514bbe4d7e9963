// internal/store/store.go
package store

import (
	"errors"
	"sort"
	"sync"

	"absence-tracker/internal/models"
)

var (
	ErrEmployeeMismatch = errors.New("absence belongs to a different employee")
	ErrIndexOutOfRange  = errors.New("absence index out of range")
)

// Store maps employee IDs to their ordered absence sequences.
type Store interface {
	Has(employeeID string) bool
	// Get returns a copy of the sequence; empty when the key is missing.
	Get(employeeID string) []models.Absence
	Set(employeeID string, absences []models.Absence) error
	Append(employeeID string, absence models.Absence) error
	Replace(employeeID string, index int, absence models.Absence) error
	Remove(employeeID string, index int) error
	EmployeeIDs() []string
	Reset() error
}

// Memory is the process-lifetime store.
type Memory struct {
	mu       sync.RWMutex
	absences map[string][]models.Absence
}

func NewMemory() *Memory {
	return &Memory{absences: make(map[string][]models.Absence)}
}

// Load builds a Memory store from an existing map, checking ownership of
// every record.
func Load(source map[string][]models.Absence) (*Memory, error) {
	m := NewMemory()
	for employeeID, seq := range source {
		if err := m.Set(employeeID, seq); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Memory) Has(employeeID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.absences[employeeID]
	return ok
}

func (m *Memory) Get(employeeID string) []models.Absence {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seq := m.absences[employeeID]
	out := make([]models.Absence, len(seq))
	copy(out, seq)
	return out
}

func (m *Memory) Set(employeeID string, absences []models.Absence) error {
	for _, a := range absences {
		if a.EmployeeID != employeeID {
			return ErrEmployeeMismatch
		}
	}
	seq := make([]models.Absence, len(absences))
	copy(seq, absences)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.absences[employeeID] = seq
	return nil
}

func (m *Memory) Append(employeeID string, absence models.Absence) error {
	if absence.EmployeeID != employeeID {
		return ErrEmployeeMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.absences[employeeID] = append(m.absences[employeeID], absence)
	return nil
}

func (m *Memory) Replace(employeeID string, index int, absence models.Absence) error {
	if absence.EmployeeID != employeeID {
		return ErrEmployeeMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	seq := m.absences[employeeID]
	if index < 0 || index >= len(seq) {
		return ErrIndexOutOfRange
	}
	seq[index] = absence
	return nil
}

func (m *Memory) Remove(employeeID string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	seq := m.absences[employeeID]
	if index < 0 || index >= len(seq) {
		return ErrIndexOutOfRange
	}
	m.absences[employeeID] = append(seq[:index:index], seq[index+1:]...)
	return nil
}

// EmployeeIDs returns the keys in sorted order.
func (m *Memory) EmployeeIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.absences))
	for id := range m.absences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.absences = make(map[string][]models.Absence)
	return nil
}

// Snapshot returns a deep copy of the whole mapping.
func (m *Memory) Snapshot() map[string][]models.Absence {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]models.Absence, len(m.absences))
	for id, seq := range m.absences {
		cp := make([]models.Absence, len(seq))
		copy(cp, seq)
		out[id] = cp
	}
	return out
}

// IndexOf returns the position of the absence with the given ID, or -1.
func IndexOf(seq []models.Absence, absenceID string) int {
	for i, a := range seq {
		if a.ID == absenceID {
			return i
		}
	}
	return -1
}

// FindContaining returns the first absence in sequence order whose
// interval contains date.
func FindContaining(seq []models.Absence, date string) (models.Absence, bool) {
	for _, a := range seq {
		if a.Contains(date) {
			return a, true
		}
	}
	return models.Absence{}, false
}

// Overlapping returns the absences intersecting [start, end], skipping
// excludeID. Overlaps are tolerated by the store; this is informational.
func Overlapping(seq []models.Absence, start, end, excludeID string) []models.Absence {
	var out []models.Absence
	for _, a := range seq {
		if a.ID == excludeID {
			continue
		}
		if a.Overlaps(start, end) {
			out = append(out, a)
		}
	}
	return out
}
