package roster

// Available reports whether the person can serve on the given date.
// An exempt person is never available; otherwise any absence record
// covering the date makes them unavailable, independent of role.
func Available(p Person, d Date, absences []AbsenceRecord) bool {
	if p.Exempt {
		return false
	}
	for _, a := range absences {
		if a.PersonID == p.ID && a.Covers(d) {
			return false
		}
	}
	return true
}

// AvailablePool prunes the personnel list down to those available on the
// given date
func AvailablePool(personnel []Person, d Date, absences []AbsenceRecord) []Person {
	pool := make([]Person, 0, len(personnel))
	for _, p := range personnel {
		if Available(p, d, absences) {
			pool = append(pool, p)
		}
	}
	return pool
}
