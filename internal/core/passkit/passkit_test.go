package passkit

import (
	"testing"
	"time"
)

func TestTermsFor(t *testing.T) {
	issued := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		passType   string
		wantAccess string
		wantExpiry time.Time
	}{
		{TypeGuest, AccessPontoonOnly, issued.AddDate(0, 0, 1)},
		{TypeOwner, AccessAllAreas, issued.AddDate(0, 0, 365)},
		{TypeCrew, AccessPontoonOnly, issued.AddDate(0, 0, 365)},
	}

	for _, tt := range tests {
		t.Run(tt.passType, func(t *testing.T) {
			got := TermsFor(tt.passType, issued)
			if got.AccessLevel != tt.wantAccess {
				t.Errorf("access = %s, want %s", got.AccessLevel, tt.wantAccess)
			}
			if !got.ExpiresAt.Equal(tt.wantExpiry) {
				t.Errorf("expiry = %s, want %s", got.ExpiresAt, tt.wantExpiry)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := map[string]string{
		"issue an owner pass":       TypeOwner,
		"crew pass for the skipper": TypeCrew,
		"pass for my friend":        TypeGuest,
	}
	for text, want := range tests {
		if got := ParseType(text); got != want {
			t.Errorf("ParseType(%q) = %s, want %s", text, got, want)
		}
	}
}
