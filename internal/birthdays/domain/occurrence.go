package domain

import "time"

// SoonWindowDays is the horizon, in days, inside which an upcoming
// birthday is flagged as soon.
const SoonWindowDays = 7

// Occurrence is the next date a birthday recurs, seen from a given day.
type Occurrence struct {
	Next          Date `json:"next"`
	DaysRemaining int  `json:"days_remaining"`
	Age           int  `json:"age"`
	IsToday       bool `json:"is_today"`
	IsSoon        bool `json:"is_soon"`
}

// NextOccurrence computes when date next recurs relative to now. "Today"
// is the calendar day of now in now's location; a birthday falling on it
// has zero days remaining whatever the time of day.
//
// Feb 29 dates are observed on Feb 28 in non-leap years.
func NextOccurrence(date Date, now time.Time) Occurrence {
	today := DateOf(now)

	next := observedIn(date, today.Year)
	if next.Before(today) {
		next = observedIn(date, today.Year+1)
	}

	days := today.DaysUntil(next)
	return Occurrence{
		Next:          next,
		DaysRemaining: days,
		Age:           next.Year - date.Year,
		IsToday:       days == 0,
		IsSoon:        days > 0 && days <= SoonWindowDays,
	}
}

func observedIn(date Date, year int) Date {
	if date.Month == time.February && date.Day == 29 && !isLeap(year) {
		return Date{Year: year, Month: time.February, Day: 28}
	}
	return Date{Year: year, Month: date.Month, Day: date.Day}
}
