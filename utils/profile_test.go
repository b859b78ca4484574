package utils

import (
	"testing"
	"time"
)

func TestCanUpdateNames(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if !CanUpdateNames(nil, now) {
		t.Error("never-updated names should be editable")
	}

	recent := now.Add(-NamesUpdateCooldown + time.Hour)
	if CanUpdateNames(&recent, now) {
		t.Error("names updated inside the cooldown window should be locked")
	}

	old := now.Add(-NamesUpdateCooldown)
	if !CanUpdateNames(&old, now) {
		t.Error("names updated exactly one cooldown ago should be editable")
	}
}

func TestIsAdult(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want bool
	}{
		{"18th birthday today", time.Date(2008, 8, 1, 0, 0, 0, 0, time.UTC), true},
		{"one day short of 18", time.Date(2008, 8, 2, 0, 0, 0, 0, time.UTC), false},
		{"well over 18", time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		if got := IsAdult(tt.dob, now); got != tt.want {
			t.Errorf("%s: IsAdult = %v, want %v", tt.name, got, tt.want)
		}
	}
}
