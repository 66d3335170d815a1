package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// MemoryDB is an in-memory Database used by tests and demo deployments.
// Rosters are deep-copied on the way in and out so callers can never
// mutate stored state behind the store's back.
type MemoryDB struct {
	mu        sync.RWMutex
	personnel []roster.Person
	absences  []roster.AbsenceRecord
	rosters   map[roster.Date]*roster.Roster
}

// NewMemoryDB creates an empty in-memory database
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{rosters: make(map[roster.Date]*roster.Roster)}
}

func (m *MemoryDB) ListPersonnel(ctx context.Context) ([]roster.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]roster.Person(nil), m.personnel...), nil
}

func (m *MemoryDB) ReplacePersonnel(ctx context.Context, personnel []roster.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.personnel = append([]roster.Person(nil), personnel...)
	return nil
}

func (m *MemoryDB) ListAbsences(ctx context.Context) ([]roster.AbsenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]roster.AbsenceRecord(nil), m.absences...), nil
}

func (m *MemoryDB) ReplaceAbsences(ctx context.Context, absences []roster.AbsenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.absences = append([]roster.AbsenceRecord(nil), absences...)
	return nil
}

func (m *MemoryDB) GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rosters[date]
	if !ok {
		return nil, nil
	}
	return copyRoster(r)
}

func (m *MemoryDB) ListRostersBefore(ctx context.Context, date roster.Date) ([]*roster.Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*roster.Roster
	for d, r := range m.rosters {
		if d < date {
			cp, err := copyRoster(r)
			if err != nil {
				return nil, err
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *MemoryDB) SaveRoster(ctx context.Context, r *roster.Roster) error {
	cp, err := copyRoster(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosters[r.Date] = cp
	return nil
}

func (m *MemoryDB) Close() error {
	return nil
}

func copyRoster(r *roster.Roster) (*roster.Roster, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to copy roster: %w", err)
	}
	var cp roster.Roster
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("failed to copy roster: %w", err)
	}
	return &cp, nil
}
