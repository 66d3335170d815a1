package roster

import (
	"errors"
	"fmt"
)

// ErrUnknownSlot is returned when a slot reference does not address an
// existing slot of the roster
var ErrUnknownSlot = errors.New("unknown roster slot")

// SlotKind names the family a slot belongs to
type SlotKind string

const (
	SlotPoliceChief    SlotKind = "police_chief"
	SlotPoliceDeputy   SlotKind = "police_deputy"
	SlotStandbyOfficer SlotKind = "standby_officer"
	SlotStandbyNCO     SlotKind = "standby_nco"
	SlotSpecialist     SlotKind = "specialist"
	SlotSentinel       SlotKind = "sentinel"
)

// SlotRef designates one fillable position within a roster.
//
// For SlotSpecialist, Index addresses the entry in Roster.Specialists and
// Specialty must match it. For SlotSentinel, PointID selects the guard
// point and Index the sentinel position (0..2). The other kinds are
// singletons and use neither field.
type SlotRef struct {
	Kind      SlotKind `json:"kind"`
	Specialty string   `json:"specialty,omitempty"`
	PointID   int      `json:"pointId,omitempty"`
	Index     int      `json:"index,omitempty"`
}

// RoleID returns the fixed role governing rank eligibility for the slot.
// Specialist slots have no role; eligibility there is by specialty.
func (s SlotRef) RoleID() (RoleID, bool) {
	switch s.Kind {
	case SlotPoliceChief:
		return RolePoliceChief, true
	case SlotPoliceDeputy:
		return RolePoliceDeputy, true
	case SlotStandbyOfficer:
		return RoleStandbyOfficer, true
	case SlotStandbyNCO:
		return RoleStandbyNCO, true
	case SlotSentinel:
		return RoleGuardSentinel, true
	default:
		return "", false
	}
}

func (s SlotRef) String() string {
	switch s.Kind {
	case SlotSpecialist:
		return fmt.Sprintf("specialist[%d] (%s)", s.Index, s.Specialty)
	case SlotSentinel:
		return fmt.Sprintf("point %d sentinel %d", s.PointID, s.Index)
	default:
		return string(s.Kind)
	}
}

// Occupant returns the current occupant of the designated slot, nil if the
// slot is vacant
func (r *Roster) Occupant(ref SlotRef) (*string, error) {
	switch ref.Kind {
	case SlotPoliceChief:
		return r.PoliceStation.ChiefID, nil
	case SlotPoliceDeputy:
		return r.PoliceStation.DeputyID, nil
	case SlotStandbyOfficer:
		return r.Standby.OfficerID, nil
	case SlotStandbyNCO:
		return r.Standby.NCOID, nil
	case SlotSpecialist:
		if ref.Index < 0 || ref.Index >= len(r.Specialists) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, ref)
		}
		if ref.Specialty != "" && r.Specialists[ref.Index].Specialty != ref.Specialty {
			return nil, fmt.Errorf("%w: %s does not match configured specialty %q",
				ErrUnknownSlot, ref, r.Specialists[ref.Index].Specialty)
		}
		return r.Specialists[ref.Index].PersonID, nil
	case SlotSentinel:
		if ref.Index < 0 || ref.Index >= SentinelsPerPoint {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, ref)
		}
		for _, gp := range r.GuardPoints {
			if gp.PointID == ref.PointID {
				return gp.Sentinels[ref.Index], nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, ref)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, ref.Kind)
	}
}

// SetOccupant writes a person id into the designated slot. A nil id
// vacates the slot.
func (r *Roster) SetOccupant(ref SlotRef, personID *string) error {
	// Resolve first so addressing errors surface before any mutation
	if _, err := r.Occupant(ref); err != nil {
		return err
	}
	switch ref.Kind {
	case SlotPoliceChief:
		r.PoliceStation.ChiefID = personID
	case SlotPoliceDeputy:
		r.PoliceStation.DeputyID = personID
	case SlotStandbyOfficer:
		r.Standby.OfficerID = personID
	case SlotStandbyNCO:
		r.Standby.NCOID = personID
	case SlotSpecialist:
		r.Specialists[ref.Index].PersonID = personID
	case SlotSentinel:
		for i := range r.GuardPoints {
			if r.GuardPoints[i].PointID == ref.PointID {
				r.GuardPoints[i].Sentinels[ref.Index] = personID
				break
			}
		}
	}
	return nil
}
