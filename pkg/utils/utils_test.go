package utils

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReservationTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 utc", "2026-10-17T23:00:00Z", time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2026-10-17T19:00:00-04:00", time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)},
		{"local seconds", "2026-10-17T19:00:00", time.Date(2026, 10, 17, 19, 0, 0, 0, loc)},
		{"local minutes", "2026-10-17T19:30", time.Date(2026, 10, 17, 19, 30, 0, 0, loc)},
		{"space separated", "2026-10-17 18:15", time.Date(2026, 10, 17, 18, 15, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReservationTime(tt.input, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseReservationTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "2026-13-01T19:00", "19:00"} {
		_, err := ParseReservationTime(input, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", input)
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	day, err := ParseDate("2026-10-17", loc)
	require.NoError(t, err)

	start, end := DayBounds(day.Add(20*time.Hour), loc)
	assert.True(t, start.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, loc)))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestValidations(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	type form struct {
		Phone string `validate:"isphone"`
		Date  string `validate:"isdate"`
	}

	assert.NoError(t, v.Struct(form{Phone: "+1 (555) 010-0199", Date: "2026-10-17"}))
	assert.Error(t, v.Struct(form{Phone: "12", Date: "2026-10-17"}))
	assert.Error(t, v.Struct(form{Phone: "555-CALL-NOW", Date: "2026-10-17"}))
	assert.Error(t, v.Struct(form{Phone: "5550100199", Date: "17/10/2026"}))
	assert.Error(t, v.Struct(form{Phone: "5550100199", Date: "2026-02-30"}))
}
