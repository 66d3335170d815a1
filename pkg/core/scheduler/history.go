package scheduler

import (
	"sort"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// History answers, per person, when they last held any duty slot before a
// target date and whether they served on the immediately preceding day.
// It is computed once per generation call and shared across every slot
// comparison.
type History struct {
	target          roster.Date
	lastDuty        map[string]roster.Date
	servedYesterday map[string]bool
}

// BuildHistory scans the roster archive in descending date order, keeping
// for each person the most recent date strictly before target on which
// they occupied any slot
func BuildHistory(target roster.Date, archive []*roster.Roster) *History {
	h := &History{
		target:          target,
		lastDuty:        make(map[string]roster.Date),
		servedYesterday: make(map[string]bool),
	}

	past := make([]*roster.Roster, 0, len(archive))
	for _, r := range archive {
		if r.Date < target {
			past = append(past, r)
		}
	}
	sort.Slice(past, func(i, j int) bool { return past[i].Date > past[j].Date })

	yesterday := target.Prev()
	for _, r := range past {
		for id := range r.BusySet() {
			if _, seen := h.lastDuty[id]; !seen {
				h.lastDuty[id] = r.Date
			}
			if r.Date == yesterday {
				h.servedYesterday[id] = true
			}
		}
	}
	return h
}

// LastDuty returns the most recent duty date strictly before the target
// date. ok is false when the person has never served.
func (h *History) LastDuty(personID string) (roster.Date, bool) {
	d, ok := h.lastDuty[personID]
	return d, ok
}

// ServedYesterday reports whether the person held any slot on the day
// before the target date. False when no roster exists for that day.
func (h *History) ServedYesterday(personID string) bool {
	return h.servedYesterday[personID]
}
