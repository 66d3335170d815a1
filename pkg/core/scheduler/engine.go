package scheduler

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// Config carries the immutable snapshot a single generation call works on
type Config struct {
	Date      roster.Date
	Personnel []roster.Person
	Absences  []roster.AbsenceRecord
	Catalog   *roster.Catalog

	// Archive is every previously generated roster; it feeds the rest
	// rule and the equity ordering
	Archive []*roster.Roster

	// Shuffle, when set, randomizes the order of never-served candidates
	// before the equity sort. Nil keeps generation fully deterministic
	// (stable order by person id).
	Shuffle *rand.Rand
}

// Generate produces the duty roster for one date.
//
// Roles are filled greedily in a fixed priority order: standby officer,
// standby NCO, police chief, police deputy, the profile's specialist
// requirements in configured order, then each active guard point in
// ascending id order with three sentinel slots apiece. A staffing
// shortfall leaves slots vacant; it is never an error. The result always
// has status DRAFT and fully replaces any prior roster for the date;
// callers must refuse to regenerate a VALIDATED roster.
func Generate(cfg Config) *roster.Roster {
	class := roster.Classify(cfg.Date, cfg.Catalog.Calendar)
	profile, exact := cfg.Catalog.Profile(class)

	result := &roster.Roster{
		Date:           cfg.Date,
		Classification: class,
		Status:         roster.StatusDraft,
		Specialists:    []roster.SpecialistAssignment{},
		GuardPoints:    []roster.GuardPointAssignment{},
	}
	if !exact {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no day profile configured for %s, using profile %q", class, profile.ID))
	}

	pool := roster.AvailablePool(cfg.Personnel, cfg.Date, cfg.Absences)
	history := BuildHistory(cfg.Date, cfg.Archive)
	busy := make(map[string]bool)

	pick := func(eligible func(roster.Person) bool, count int) []roster.Person {
		return selectCandidates(pool, history, busy, eligible, count, cfg.Shuffle)
	}
	assign := func(p roster.Person) *string {
		busy[p.ID] = true
		id := p.ID
		return &id
	}

	byRank := func(id roster.RoleID) func(roster.Person) bool {
		role := cfg.Catalog.Role(id)
		return func(p roster.Person) bool { return role.Allows(p.Rank) }
	}

	// Standby pair first: the duty officer outranks everything else when
	// personnel are scarce
	if picked := pick(byRank(roster.RoleStandbyOfficer), 1); len(picked) > 0 {
		result.Standby.OfficerID = assign(picked[0])
	}
	if picked := pick(byRank(roster.RoleStandbyNCO), 1); len(picked) > 0 {
		result.Standby.NCOID = assign(picked[0])
	}

	// Police post
	if picked := pick(byRank(roster.RolePoliceChief), 1); len(picked) > 0 {
		result.PoliceStation.ChiefID = assign(picked[0])
	}
	if picked := pick(byRank(roster.RolePoliceDeputy), 1); len(picked) > 0 {
		result.PoliceStation.DeputyID = assign(picked[0])
	}

	// Specialists, in the order the profile configures them. Specialty
	// membership is the whole predicate; rank is not restricted.
	for _, req := range profile.Specialists {
		if req.Count <= 0 {
			continue
		}
		specialty := req.Specialty
		picked := pick(func(p roster.Person) bool { return p.HasSpecialty(specialty) }, req.Count)
		for i := 0; i < req.Count; i++ {
			slot := roster.SpecialistAssignment{Specialty: specialty}
			if i < len(picked) {
				slot.PersonID = assign(picked[i])
			}
			result.Specialists = append(result.Specialists, slot)
		}
	}

	// Guard points in ascending id order. Sentinels additionally require
	// no medical restriction. A point short on sentinels still appears
	// with nil slots so the shortfall stays visible.
	guardRole := cfg.Catalog.Role(roster.RoleGuardSentinel)
	pointIDs := append([]int(nil), profile.ActivePointIDs...)
	sort.Ints(pointIDs)
	for _, pointID := range pointIDs {
		picked := pick(func(p roster.Person) bool {
			return !p.MedicalRestriction && guardRole.Allows(p.Rank)
		}, roster.SentinelsPerPoint)
		gp := roster.GuardPointAssignment{PointID: pointID}
		for i := range picked {
			gp.Sentinels[i] = assign(picked[i])
		}
		result.GuardPoints = append(result.GuardPoints, gp)
	}

	return result
}

// selectCandidates filters the pool for one slot family and returns the
// top count candidates in equity order
func selectCandidates(
	pool []roster.Person,
	history *History,
	busy map[string]bool,
	eligible func(roster.Person) bool,
	count int,
	shuffle *rand.Rand,
) []roster.Person {
	candidates := make([]roster.Person, 0, len(pool))
	for _, p := range pool {
		if busy[p.ID] {
			continue
		}
		// Rest rule: anyone who served yesterday sits today out
		if history.ServedYesterday(p.ID) {
			continue
		}
		if eligible(p) {
			candidates = append(candidates, p)
		}
	}

	if shuffle != nil {
		shuffle.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	// Equity ordering: never served ranks ahead of previously served;
	// among the previously served, the oldest last-duty date wins.
	// Person id is the deterministic tiebreaker unless shuffled above.
	sort.SliceStable(candidates, func(i, j int) bool {
		di, servedI := history.LastDuty(candidates[i].ID)
		dj, servedJ := history.LastDuty(candidates[j].ID)
		switch {
		case !servedI && !servedJ:
			if shuffle != nil {
				return false // keep shuffled order
			}
			return candidates[i].ID < candidates[j].ID
		case !servedI:
			return true
		case !servedJ:
			return false
		case di != dj:
			return di < dj
		default:
			return candidates[i].ID < candidates[j].ID
		}
	})

	if count < len(candidates) {
		candidates = candidates[:count]
	}
	return candidates
}
