package db

import (
	"context"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// PersonnelStore provides read and seed access to the unit roster of
// persons. The engine only ever reads it.
type PersonnelStore interface {
	ListPersonnel(ctx context.Context) ([]roster.Person, error)
	ReplacePersonnel(ctx context.Context, personnel []roster.Person) error
}

// AbsenceStore provides access to absence records
type AbsenceStore interface {
	ListAbsences(ctx context.Context) ([]roster.AbsenceRecord, error)
	ReplaceAbsences(ctx context.Context, absences []roster.AbsenceRecord) error
}

// RosterStore is the date-keyed roster archive. GetRoster returns
// (nil, nil) when no roster exists for the date. SaveRoster is a
// whole-roster upsert; the last writer wins.
type RosterStore interface {
	GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error)
	ListRostersBefore(ctx context.Context, date roster.Date) ([]*roster.Roster, error)
	SaveRoster(ctx context.Context, r *roster.Roster) error
}

// Database composes every store the application needs. The memory,
// sqlite and postgres packages all implement it.
type Database interface {
	PersonnelStore
	AbsenceStore
	RosterStore
	Close() error
}
