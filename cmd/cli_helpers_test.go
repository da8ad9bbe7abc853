package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in       string
		want     time.Time
		wantTime bool
		wantErr  bool
	}{
		{in: "today", want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)},
		{in: "Tomorrow", want: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)},
		{in: "2025-07-01", want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2025-07-01 14:05", want: time.Date(2025, 7, 1, 14, 5, 0, 0, time.UTC), wantTime: true},
		{in: "07/01/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, hasTime, err := parseDay(tt.in, testNow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.wantTime, hasTime)
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{in: "07:30", hour: 7, minute: 30},
		{in: "9", hour: 9},
		{in: "23:59", hour: 23, minute: 59},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := parseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays([]string{"Mon", "wednesday", " sun "})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Sunday}, days)

	_, err = parseWeekdays([]string{"xyz"})
	assert.Error(t, err)
}
