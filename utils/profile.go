package utils

import "time"

// Names can only change once per cooldown window (approximated as 3×30 days).
const NamesUpdateCooldown = 3 * 30 * 24 * time.Hour

func CanUpdateNames(lastUpdate *time.Time, now time.Time) bool {
	if lastUpdate == nil {
		return true
	}
	return now.Sub(*lastUpdate) >= NamesUpdateCooldown
}

// IsAdult reports whether someone born on dob is at least 18 years old.
func IsAdult(dob, now time.Time) bool {
	return !dob.After(now.AddDate(-18, 0, 0))
}
