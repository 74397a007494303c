package competence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompetence(t *testing.T) {
	clock := NewFixedClock(time.Date(2026, time.March, 17, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "2026-03", clock.Competence())
}

func TestCompetencePadsSingleDigitMonths(t *testing.T) {
	clock := NewFixedClock(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-01", clock.Competence())
}

func TestMonthStart(t *testing.T) {
	clock := NewFixedClock(time.Date(2026, time.March, 17, 15, 4, 5, 123, time.UTC))
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), clock.MonthStart())
}

func TestIsCompetence(t *testing.T) {
	valid := []string{"2026-01", "2026-12", "1999-06"}
	for _, s := range valid {
		assert.True(t, IsCompetence(s), s)
	}

	invalid := []string{"", "2026-13", "2026-00", "2026-1", "26-01", "2026/01", "2026-01-01", "abcd-ef"}
	for _, s := range invalid {
		assert.False(t, IsCompetence(s), s)
	}
}
