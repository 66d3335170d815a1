package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/core/scheduler"
)

// ReplacementStore defines the database operations needed for manual
// slot replacements
type ReplacementStore interface {
	ListPersonnel(ctx context.Context) ([]roster.Person, error)
	ListAbsences(ctx context.Context) ([]roster.AbsenceRecord, error)
	GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error)
	SaveRoster(ctx context.Context, r *roster.Roster) error
}

// ListReplacementCandidates returns every person eligible to take over the
// designated slot of the stored roster for the date. Manual overrides skip
// the rest rule and equity ordering; only availability, exclusivity and the
// rank/specialty predicate apply.
func ListReplacementCandidates(
	ctx context.Context,
	store ReplacementStore,
	catalog *roster.Catalog,
	logger *zap.Logger,
	date roster.Date,
	slot roster.SlotRef,
) ([]roster.Person, error) {
	r, err := GetRoster(ctx, store, date)
	if err != nil {
		return nil, err
	}
	personnel, err := store.ListPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}
	absences, err := store.ListAbsences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	candidates, err := scheduler.ReplacementCandidates(r, slot, personnel, absences, catalog)
	if err != nil {
		return nil, err
	}

	logger.Debug("Computed replacement candidates",
		zap.String("date", date.String()),
		zap.String("slot", slot.String()),
		zap.Int("count", len(candidates)))

	return candidates, nil
}

// ApplyReplacement writes a new occupant into the designated slot.
//
// Eligibility is re-validated at commit time rather than trusting an
// earlier candidate list; a stale pick fails with ErrIneligibleCandidate
// and no mutation. A VALIDATED roster is rejected with ErrRosterLocked
// until the operator unlocks it. The committed roster always comes back
// as DRAFT.
func ApplyReplacement(
	ctx context.Context,
	store ReplacementStore,
	catalog *roster.Catalog,
	logger *zap.Logger,
	date roster.Date,
	slot roster.SlotRef,
	personID string,
) (*roster.Roster, error) {
	r, err := GetRoster(ctx, store, date)
	if err != nil {
		return nil, err
	}
	if r.Locked() {
		return nil, fmt.Errorf("roster for %s: %w", date, ErrRosterLocked)
	}

	personnel, err := store.ListPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}
	candidate, ok := roster.PersonIndex(personnel)[personID]
	if !ok {
		return nil, fmt.Errorf("person %s: %w", personID, ErrUnknownPerson)
	}

	absences, err := store.ListAbsences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	eligible, err := scheduler.EligibleReplacement(r, slot, candidate, absences, catalog)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("person %s for %s: %w", personID, slot, ErrIneligibleCandidate)
	}

	if err := r.SetOccupant(slot, &personID); err != nil {
		return nil, err
	}
	// Editing always reverts the roster to DRAFT
	r.Unlock()

	if err := store.SaveRoster(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save roster for %s: %w", date, err)
	}

	logger.Info("Replacement applied",
		zap.String("date", date.String()),
		zap.String("slot", slot.String()),
		zap.String("person_id", personID))

	return r, nil
}
