package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name     string
		current  Status
		upToDate bool
		want     Status
		changed  bool
	}{
		{"inactive up to date activates", StatusInactive, true, StatusActive, true},
		{"inactive behind stays inactive", StatusInactive, false, StatusInactive, false},
		{"active never regresses", StatusActive, false, StatusActive, false},
		{"active up to date is a no-op", StatusActive, true, StatusActive, false},
		{"terminated stays terminated", StatusTerminated, true, StatusTerminated, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := Transition(tc.current, tc.upToDate)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	cases := map[string]string{
		"+2250501020304":  "0501020304",
		"002250501020304": "0501020304",
		"2250501020304":   "0501020304",
		"0501020304":      "0501020304",
		" 0501020304 ":    "0501020304",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizePhoneNumber(in), "input %q", in)
	}
}

func TestGenerateNumber(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 30, 45, 0, time.UTC)

	number := GenerateNumber("+2250501020304", at)

	assert.Equal(t, "0501020304M050324143045", number)
}

func TestGenerateNumber_DeterministicForSameInstant(t *testing.T) {
	at := time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, GenerateNumber("0501020304", at), GenerateNumber("0501020304", at))
}
