package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNextOccurrence_Examples(t *testing.T) {
	now := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)

	t.Run("birthday today", func(t *testing.T) {
		occ := NextOccurrence(mustDate(t, "1990-06-01"), now)
		assert.Equal(t, 0, occ.DaysRemaining)
		assert.Equal(t, 34, occ.Age)
		assert.True(t, occ.IsToday)
		assert.False(t, occ.IsSoon)
		assert.Equal(t, "2024-06-01", occ.Next.String())
	})

	t.Run("later this year", func(t *testing.T) {
		occ := NextOccurrence(mustDate(t, "1990-12-25"), now)
		assert.Equal(t, "2024-12-25", occ.Next.String())
		assert.Equal(t, 207, occ.DaysRemaining)
		assert.Equal(t, 34, occ.Age)
	})

	t.Run("already passed this year", func(t *testing.T) {
		occ := NextOccurrence(mustDate(t, "1990-01-10"), now)
		assert.Equal(t, "2025-01-10", occ.Next.String())
		assert.Equal(t, 2025, occ.Next.Year)
		assert.Equal(t, 35, occ.Age)
		assert.Equal(t, 223, occ.DaysRemaining)
	})

	t.Run("yesterday rolls to next year", func(t *testing.T) {
		occ := NextOccurrence(mustDate(t, "2000-05-31"), now)
		assert.Equal(t, "2025-05-31", occ.Next.String())
		assert.Equal(t, 364, occ.DaysRemaining)
		assert.Equal(t, 25, occ.Age)
	})

	t.Run("within a week is soon", func(t *testing.T) {
		occ := NextOccurrence(mustDate(t, "2010-06-08"), now)
		assert.Equal(t, 7, occ.DaysRemaining)
		assert.True(t, occ.IsSoon)
		assert.False(t, occ.IsToday)
	})
}

func TestNextOccurrence_TimeOfDayIgnored(t *testing.T) {
	date := mustDate(t, "1985-03-15")
	loc := time.FixedZone("UTC+10", 10*60*60)

	early := NextOccurrence(date, time.Date(2024, time.March, 15, 0, 0, 1, 0, loc))
	late := NextOccurrence(date, time.Date(2024, time.March, 15, 23, 59, 59, 0, loc))

	assert.Equal(t, 0, early.DaysRemaining)
	assert.Equal(t, 0, late.DaysRemaining)
	assert.Equal(t, early, late)
}

func TestNextOccurrence_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2024, time.March, 9, 12, 0, 0, 0, loc)
	occ := NextOccurrence(mustDate(t, "1999-03-11"), now)
	assert.Equal(t, 2, occ.DaysRemaining)
}

func TestNextOccurrence_LeapDay(t *testing.T) {
	born := mustDate(t, "2000-02-29")

	t.Run("observed on feb 28 in common years", func(t *testing.T) {
		occ := NextOccurrence(born, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2023-02-28", occ.Next.String())
		assert.Equal(t, 23, occ.Age)
	})

	t.Run("feb 28 of a common year is the day itself", func(t *testing.T) {
		occ := NextOccurrence(born, time.Date(2023, time.February, 28, 9, 0, 0, 0, time.UTC))
		assert.Equal(t, 0, occ.DaysRemaining)
	})

	t.Run("feb 29 in leap years", func(t *testing.T) {
		occ := NextOccurrence(born, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2024-02-29", occ.Next.String())
		assert.Equal(t, 28, occ.DaysRemaining)
		assert.Equal(t, 24, occ.Age)
	})

	t.Run("after feb 28 in a common year rolls forward", func(t *testing.T) {
		occ := NextOccurrence(born, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2024-02-29", occ.Next.String())
		assert.Equal(t, 365, occ.DaysRemaining)
	})
}

func TestNextOccurrence_Properties(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	for m := time.January; m <= time.December; m++ {
		for _, day := range []int{1, 15, 28} {
			date, err := NewDate(1980, m, day)
			require.NoError(t, err)

			occ := NextOccurrence(date, now)
			assert.GreaterOrEqual(t, occ.DaysRemaining, 0)
			assert.Less(t, occ.DaysRemaining, 366)
			assert.Equal(t, occ.Next.Year-date.Year, occ.Age)

			passed := m < time.June || (m == time.June && day < 1)
			if passed {
				assert.Equal(t, 2025, occ.Next.Year, date.String())
			} else {
				assert.Equal(t, 2024, occ.Next.Year, date.String())
			}
		}
	}
}
