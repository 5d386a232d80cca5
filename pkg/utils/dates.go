package utils

import "time"

// DateLayout is the ISO calendar date layout used for expiries.
const DateLayout = "2006-01-02"

// FormatDate formats t as an ISO calendar date in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns the ISO date days after t.
func AddDays(t time.Time, days int) string {
	return FormatDate(t.AddDate(0, 0, days))
}
