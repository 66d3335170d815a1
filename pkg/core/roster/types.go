package roster

import (
	"fmt"
	"time"
)

// Date is a calendar date in ISO format (YYYY-MM-DD).
// ISO dates compare lexicographically, so Date values can be ordered
// with plain string comparison.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates and returns an ISO calendar date
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC. The receiver is assumed to have
// come from ParseDate or a store column with a date type.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// AddDays returns the date shifted by the given number of days
func (d Date) AddDays(days int) Date {
	return Date(d.Time().AddDate(0, 0, days).Format(dateLayout))
}

// Prev returns the preceding calendar date
func (d Date) Prev() Date {
	return d.AddDays(-1)
}

func (d Date) String() string {
	return string(d)
}

// Classification is the day type a date resolves to
type Classification string

const (
	ClassWeekday Classification = "WEEKDAY"
	ClassWeekend Classification = "WEEKEND"
	ClassHoliday Classification = "HOLIDAY"
)

func (c Classification) IsValid() bool {
	return c == ClassWeekday || c == ClassWeekend || c == ClassHoliday
}

// Status is the lifecycle state of a roster
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusValidated Status = "VALIDATED"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusValidated
}

// RoleID identifies a fixed duty role. Specialist slots are keyed by
// specialty name instead and carry no RoleID.
type RoleID string

const (
	RolePoliceChief    RoleID = "police_chief"
	RolePoliceDeputy   RoleID = "police_deputy"
	RoleStandbyOfficer RoleID = "standby_officer"
	RoleStandbyNCO     RoleID = "standby_nco"
	RoleGuardSentinel  RoleID = "guard"
)

// SentinelsPerPoint is the number of sentinel slots at every guard point
const SentinelsPerPoint = 3

// Rank is a configurable rank definition. Order is a display hierarchy
// (1 = lowest); eligibility never looks at it.
type Rank struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Role maps a duty role to the ranks allowed to fill it
type Role struct {
	ID           RoleID   `json:"id"`
	Name         string   `json:"name"`
	AllowedRanks []string `json:"allowedRanks"`
}

// Allows reports whether the given rank may fill this role
func (r Role) Allows(rank string) bool {
	for _, allowed := range r.AllowedRanks {
		if allowed == rank {
			return true
		}
	}
	return false
}

// Person is a member of the unit. Read-only to the engine; personnel
// management is a collaborator concern.
type Person struct {
	ID                 string   `json:"id"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Rank               string   `json:"rank"`
	Specialties        []string `json:"specialties"`
	MedicalRestriction bool     `json:"medicalRestriction"`
	Exempt             bool     `json:"exempt"`
}

// HasSpecialty reports whether the person carries the given specialty tag
func (p Person) HasSpecialty(specialty string) bool {
	for _, s := range p.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// AbsenceCategory classifies an absence record
type AbsenceCategory string

const (
	AbsenceIllness        AbsenceCategory = "ILLNESS"
	AbsenceLeave          AbsenceCategory = "LEAVE"
	AbsenceMission        AbsenceCategory = "MISSION"
	AbsenceDetachment     AbsenceCategory = "DETACHMENT"
	AbsenceAdministrative AbsenceCategory = "ADMINISTRATIVE"
)

// AbsenceRecord makes a person unavailable for every date in the
// inclusive [Start, End] interval, independent of role.
type AbsenceRecord struct {
	ID       string          `json:"id"`
	PersonID string          `json:"personId"`
	Category AbsenceCategory `json:"category"`
	Start    Date            `json:"startDate"`
	End      Date            `json:"endDate"`
	Note     string          `json:"note,omitempty"`
}

// Covers reports whether the record spans the given date (inclusive bounds)
func (a AbsenceRecord) Covers(d Date) bool {
	return a.Start <= d && d <= a.End
}

// GuardPoint is static reference data for a guarded location
type GuardPoint struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// SpecialistRequirement is one (specialty, required count) pair of a profile
type SpecialistRequirement struct {
	Specialty string `json:"specialty"`
	Count     int    `json:"count"`
}

// DayProfile configures which guard points are active and which
// specialists are required for one day classification
type DayProfile struct {
	ID             string                  `json:"id"`
	Classification Classification          `json:"dayType"`
	ActivePointIDs []int                   `json:"activePointIds"`
	Specialists    []SpecialistRequirement `json:"requiredSpecialists"`
}

// PoliceStationAssignment holds the police post pair. Nil means vacant.
type PoliceStationAssignment struct {
	ChiefID  *string `json:"chiefId"`
	DeputyID *string `json:"deputyId"`
}

// StandbyAssignment holds the standby pair. Nil means vacant.
type StandbyAssignment struct {
	OfficerID *string `json:"officerId"`
	NCOID     *string `json:"ncoId"`
}

// SpecialistAssignment is one filled-or-vacant specialist slot
type SpecialistAssignment struct {
	Specialty string  `json:"specialty"`
	PersonID  *string `json:"personId"`
}

// GuardPointAssignment holds the three sentinel slots of one active point.
// Vacant slots stay nil; the point entry itself is always present so
// shortfalls remain visible.
type GuardPointAssignment struct {
	PointID   int                        `json:"pointId"`
	Sentinels [SentinelsPerPoint]*string `json:"sentinels"`
}

// Roster is the complete set of duty assignments for one calendar date
type Roster struct {
	Date           Date                    `json:"date"`
	Classification Classification          `json:"dayType"`
	Status         Status                  `json:"status"`
	PoliceStation  PoliceStationAssignment `json:"policeStation"`
	Standby        StandbyAssignment       `json:"standby"`
	Specialists    []SpecialistAssignment  `json:"specialists"`
	GuardPoints    []GuardPointAssignment  `json:"guardPoints"`

	// Warnings records configuration gaps hit during generation, e.g. a
	// missing day profile that fell back to the first configured one.
	Warnings []string `json:"warnings,omitempty"`
}

// Occupies reports whether the person holds any filled slot in the roster
func (r *Roster) Occupies(personID string) bool {
	return r.BusySet()[personID]
}

// BusySet returns the set of person ids currently holding a slot
func (r *Roster) BusySet() map[string]bool {
	busy := make(map[string]bool)
	add := func(id *string) {
		if id != nil {
			busy[*id] = true
		}
	}
	add(r.PoliceStation.ChiefID)
	add(r.PoliceStation.DeputyID)
	add(r.Standby.OfficerID)
	add(r.Standby.NCOID)
	for _, s := range r.Specialists {
		add(s.PersonID)
	}
	for _, gp := range r.GuardPoints {
		for _, id := range gp.Sentinels {
			add(id)
		}
	}
	return busy
}

// Lock transitions the roster to VALIDATED. Slot contents are untouched.
func (r *Roster) Lock() {
	r.Status = StatusValidated
}

// Unlock transitions the roster back to DRAFT, permitting regeneration
// and replacements again
func (r *Roster) Unlock() {
	r.Status = StatusDraft
}

// Locked reports whether the roster is VALIDATED
func (r *Roster) Locked() bool {
	return r.Status == StatusValidated
}
