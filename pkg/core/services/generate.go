package services

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/core/scheduler"
)

// GenerateStore defines the database operations needed to generate a roster
type GenerateStore interface {
	ListPersonnel(ctx context.Context) ([]roster.Person, error)
	ListAbsences(ctx context.Context) ([]roster.AbsenceRecord, error)
	GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error)
	ListRostersBefore(ctx context.Context, date roster.Date) ([]*roster.Roster, error)
	SaveRoster(ctx context.Context, r *roster.Roster) error
}

// GenerateRoster builds and persists the duty roster for one date.
//
// Any existing DRAFT roster for the date is fully replaced, manual edits
// included. A VALIDATED roster is rejected with ErrRosterLocked before the
// engine runs; the operator must unlock it first.
//
// shuffle is optional: when set, ties among never-served candidates are
// randomized for production fairness; nil keeps generation deterministic.
func GenerateRoster(
	ctx context.Context,
	store GenerateStore,
	catalog *roster.Catalog,
	logger *zap.Logger,
	date roster.Date,
	shuffle *rand.Rand,
) (*roster.Roster, error) {
	existing, err := store.GetRoster(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for %s: %w", date, err)
	}
	if existing != nil && existing.Locked() {
		return nil, fmt.Errorf("roster for %s: %w", date, ErrRosterLocked)
	}

	personnel, err := store.ListPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}
	absences, err := store.ListAbsences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}
	archive, err := store.ListRostersBefore(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster archive: %w", err)
	}

	logger.Debug("Generating roster",
		zap.String("date", date.String()),
		zap.Int("personnel", len(personnel)),
		zap.Int("absences", len(absences)),
		zap.Int("archive_size", len(archive)))

	result := scheduler.Generate(scheduler.Config{
		Date:      date,
		Personnel: personnel,
		Absences:  absences,
		Catalog:   catalog,
		Archive:   archive,
		Shuffle:   shuffle,
	})

	for _, warning := range result.Warnings {
		logger.Warn("Roster configuration gap",
			zap.String("date", date.String()),
			zap.String("warning", warning))
	}

	if err := store.SaveRoster(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save roster for %s: %w", date, err)
	}

	logger.Info("Roster generated",
		zap.String("date", date.String()),
		zap.String("day_type", string(result.Classification)),
		zap.Int("filled_slots", len(result.BusySet())))

	return result, nil
}

// GetRoster fetches the stored roster for a date, translating absence into
// ErrRosterNotFound
func GetRoster(ctx context.Context, store RosterReader, date roster.Date) (*roster.Roster, error) {
	r, err := store.GetRoster(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for %s: %w", date, err)
	}
	if r == nil {
		return nil, fmt.Errorf("roster for %s: %w", date, ErrRosterNotFound)
	}
	return r, nil
}

// RosterReader is the read side of the roster archive
type RosterReader interface {
	GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error)
}
