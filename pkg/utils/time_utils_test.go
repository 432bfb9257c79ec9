package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddHourClamped(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"08:00", "09:00"},
		{"20:15", "21:15"},
		{"22:45", "23:45"},
		{"23:30", "23:30"},
		{"23:00", "23:00"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := AddHourClamped(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClockRejectsGarbage(t *testing.T) {
	_, _, err := ParseClock("8h30")
	assert.Error(t, err)

	_, _, err = ParseClock("ab:cd")
	assert.Error(t, err)
}
