// Package competence derives the canonical year-month period key used to
// stamp and query every recurring fiscal record. All components share one
// Clock; nothing else may compute "what period is it" on its own.
package competence

import (
	"regexp"
	"time"
)

var competencePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Clock wraps "now" so tests can pin it to an exact instant.
type Clock struct {
	now func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func NewFixedClock(t time.Time) *Clock {
	return &Clock{now: func() time.Time { return t }}
}

func (c *Clock) Now() time.Time {
	return c.now()
}

// Competence returns the current period key, e.g. "2026-03".
func (c *Clock) Competence() string {
	return c.now().Format("2006-01")
}

// MonthStart returns midnight on the first day of the current month,
// in local time.
func (c *Clock) MonthStart() time.Time {
	n := c.now()
	return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, n.Location())
}

// IsCompetence reports whether s has the "YYYY-MM" shape.
func IsCompetence(s string) bool {
	return competencePattern.MatchString(s)
}
