package roster

// Catalog bundles the static reference data the engine consumes: rank and
// role tables, guard points, day profiles and the holiday calendar. It is
// read-only for the duration of a generation call.
type Catalog struct {
	Ranks       []Rank
	Roles       []Role
	GuardPoints []GuardPoint
	Profiles    []DayProfile
	Calendar    *Calendar

	// RotationHours are the sentinel rotation start times shown on duty
	// sheets. Display data only; allocation ignores them.
	RotationHours []string
}

// Role looks up a role definition. A missing definition yields a role
// with no allowed ranks, which degrades to vacancies rather than failing.
func (c *Catalog) Role(id RoleID) Role {
	for _, r := range c.Roles {
		if r.ID == id {
			return r
		}
	}
	return Role{ID: id}
}

// Profile selects the day profile for a classification. When no exact
// match exists the first configured profile is used and ok is false; the
// caller surfaces that as a configuration warning.
func (c *Catalog) Profile(class Classification) (DayProfile, bool) {
	for _, p := range c.Profiles {
		if p.Classification == class {
			return p, true
		}
	}
	if len(c.Profiles) > 0 {
		return c.Profiles[0], false
	}
	return DayProfile{}, false
}

// GuardPoint looks up a guard point by id
func (c *Catalog) GuardPoint(id int) (GuardPoint, bool) {
	for _, gp := range c.GuardPoints {
		if gp.ID == id {
			return gp, true
		}
	}
	return GuardPoint{}, false
}

// PersonIndex builds an id lookup over a personnel list
func PersonIndex(personnel []Person) map[string]Person {
	byID := make(map[string]Person, len(personnel))
	for _, p := range personnel {
		byID[p.ID] = p
	}
	return byID
}
