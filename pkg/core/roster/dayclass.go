package roster

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Calendar holds the holiday configuration: fixed one-off dates plus
// recurring rules (RRULE syntax, e.g. FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1).
type Calendar struct {
	fixed map[Date]bool
	rules []*rrule.RRule
}

// NewCalendar builds a calendar from fixed dates and RRULE strings
func NewCalendar(fixed []Date, rules []string) (*Calendar, error) {
	cal := &Calendar{fixed: make(map[Date]bool, len(fixed))}
	for _, d := range fixed {
		if _, err := ParseDate(string(d)); err != nil {
			return nil, fmt.Errorf("holiday date: %w", err)
		}
		cal.fixed[d] = true
	}
	for i, raw := range rules {
		rule, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday rule [%d] %q: %w", i, raw, err)
		}
		// Anchor rules far in the past so occurrences cover historical
		// rosters, not just dates after process start
		rule.DTStart(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
		cal.rules = append(cal.rules, rule)
	}
	return cal, nil
}

// IsHoliday reports whether the date is a configured holiday, either as a
// fixed date or as an occurrence of a recurring rule
func (c *Calendar) IsHoliday(d Date) bool {
	if c == nil {
		return false
	}
	if c.fixed[d] {
		return true
	}
	dayStart := d.Time()
	dayEnd := dayStart.Add(24*time.Hour - time.Second)
	for _, rule := range c.rules {
		if len(rule.Between(dayStart, dayEnd, true)) > 0 {
			return true
		}
	}
	return false
}

// Classify maps a date to its day type. A configured holiday wins over the
// weekend; everything else is an ordinary weekday. Total function.
func Classify(d Date, cal *Calendar) Classification {
	if cal.IsHoliday(d) {
		return ClassHoliday
	}
	switch d.Time().Weekday() {
	case time.Saturday, time.Sunday:
		return ClassWeekend
	default:
		return ClassWeekday
	}
}
