package domain

import "time"

// ExpirationDateLayout is the calendar-date format carried by
// Product.ExpirationDate.
const ExpirationDateLayout = "2006-01-02"

// ExpiringSoonWindowDays bounds the expiring-soon bucket: strictly after
// today, up to and including today plus the window.
const ExpiringSoonWindowDays = 90

type ExpirationStatus string

const (
	StatusExpiringSoon   ExpirationStatus = "expiring_soon"
	StatusAlreadyExpired ExpirationStatus = "already_expired"
	StatusNotExpiring    ExpirationStatus = "not_expiring"
	StatusUnknown        ExpirationStatus = "unknown" // missing or malformed date
)

// TruncateToDate strips the clock from t so comparisons stay calendar-based.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyExpiration places a raw expirationDate value relative to today.
// A date equal to today counts as already expired; the soon window includes
// its upper bound. Empty or unparsable dates classify as StatusUnknown.
func ClassifyExpiration(dateStr string, today time.Time) ExpirationStatus {
	if dateStr == "" {
		return StatusUnknown
	}
	exp, err := time.Parse(ExpirationDateLayout, dateStr)
	if err != nil {
		return StatusUnknown
	}
	today = TruncateToDate(today)
	if !exp.After(today) {
		return StatusAlreadyExpired
	}
	if !exp.After(today.AddDate(0, 0, ExpiringSoonWindowDays)) {
		return StatusExpiringSoon
	}
	return StatusNotExpiring
}
