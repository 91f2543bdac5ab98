package domain

import (
	"errors"
	"time"
)

// Window is a half-open UTC interval [Start, End) spanning exactly one
// calendar month. End is the first instant of the following month.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window (start inclusive,
// end exclusive).
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.End)
}

// Month returns the window's "YYYY-MM" token.
func (w Window) Month() string {
	return w.Start.Format("2006-01")
}

// ResolveMonth resolves a "YYYY-MM" token into its calendar-month window.
// An empty token resolves to the current UTC month of now. AddDate
// normalizes month 13, so a December start rolls the end over to January 1
// of the next year.
func ResolveMonth(token string, now time.Time) (Window, error) {
	var start time.Time
	if token == "" {
		now = now.UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01", token)
		if err != nil {
			return Window{}, ErrInvalidMonth
		}
		start = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

var ErrInvalidMonth = errors.New("invalid_month")
