package scheduler

import (
	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// ReplacementCandidates recomputes the eligible-candidate set for a manual
// override of one slot in an existing roster.
//
// A candidate must be available on the roster's date, must not already
// hold another slot, and must satisfy the slot's rank or specialty
// predicate (sentinel slots additionally exclude medical restrictions).
// The slot's current occupant is removed from the busy set first so they
// never block the slot they already hold.
//
// Unlike generation, neither the rest rule nor equity ordering applies
// here: a manual override skips fairness but not eligibility or
// exclusivity.
func ReplacementCandidates(
	r *roster.Roster,
	slot roster.SlotRef,
	personnel []roster.Person,
	absences []roster.AbsenceRecord,
	catalog *roster.Catalog,
) ([]roster.Person, error) {
	current, err := r.Occupant(slot)
	if err != nil {
		return nil, err
	}

	busy := r.BusySet()
	if current != nil {
		delete(busy, *current)
	}

	candidates := make([]roster.Person, 0)
	for _, p := range personnel {
		if !roster.Available(p, r.Date, absences) {
			continue
		}
		if busy[p.ID] {
			continue
		}
		if eligibleForSlot(p, slot, catalog) {
			candidates = append(candidates, p)
		}
	}
	return candidates, nil
}

// EligibleReplacement re-validates a single candidate for a slot. The
// commit path calls this rather than trusting a possibly stale candidate
// list from an earlier ReplacementCandidates call.
func EligibleReplacement(
	r *roster.Roster,
	slot roster.SlotRef,
	candidate roster.Person,
	absences []roster.AbsenceRecord,
	catalog *roster.Catalog,
) (bool, error) {
	current, err := r.Occupant(slot)
	if err != nil {
		return false, err
	}
	if !roster.Available(candidate, r.Date, absences) {
		return false, nil
	}
	busy := r.BusySet()
	if current != nil {
		delete(busy, *current)
	}
	if busy[candidate.ID] {
		return false, nil
	}
	return eligibleForSlot(candidate, slot, catalog), nil
}

func eligibleForSlot(p roster.Person, slot roster.SlotRef, catalog *roster.Catalog) bool {
	if slot.Kind == roster.SlotSpecialist {
		return p.HasSpecialty(slot.Specialty)
	}
	roleID, ok := slot.RoleID()
	if !ok {
		return false
	}
	if !catalog.Role(roleID).Allows(p.Rank) {
		return false
	}
	if slot.Kind == roster.SlotSentinel && p.MedicalRestriction {
		return false
	}
	return true
}
