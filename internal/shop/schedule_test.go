package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullWeek(openMinute, closeMinute int) []WorkingHours {
	hours := make([]WorkingHours, 7)
	for d := 0; d < 7; d++ {
		hours[d] = WorkingHours{Weekday: d, OpenMinute: openMinute, CloseMinute: closeMinute}
	}
	return hours
}

func TestOpenWindow(t *testing.T) {
	// 2026-09-07 is a Monday
	monday, err := time.Parse(DateLayout, "2026-09-07")
	require.NoError(t, err)

	t.Run("open day", func(t *testing.T) {
		window, open, err := OpenWindow(fullWeek(540, 1080), nil, monday)
		require.NoError(t, err)
		assert.True(t, open)
		assert.Equal(t, 540, window.Open)
		assert.Equal(t, 1080, window.Close)
	})

	t.Run("closure date wins", func(t *testing.T) {
		_, open, err := OpenWindow(fullWeek(540, 1080), []string{"2026-09-07"}, monday)
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("closure on another date ignored", func(t *testing.T) {
		_, open, err := OpenWindow(fullWeek(540, 1080), []string{"2026-09-08"}, monday)
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("closed weekday", func(t *testing.T) {
		hours := fullWeek(540, 1080)
		hours[1].IsClosed = true
		_, open, err := OpenWindow(hours, nil, monday)
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("missing weekday row", func(t *testing.T) {
		hours := fullWeek(540, 1080)[:6]
		_, _, err := OpenWindow(hours, nil, monday)
		assert.ErrorIs(t, err, ErrInvalidShopConfig)
	})

	t.Run("open after close", func(t *testing.T) {
		_, _, err := OpenWindow(fullWeek(1080, 540), nil, monday)
		assert.ErrorIs(t, err, ErrInvalidShopConfig)
	})

	t.Run("close past midnight", func(t *testing.T) {
		_, _, err := OpenWindow(fullWeek(540, 1441), nil, monday)
		assert.ErrorIs(t, err, ErrInvalidShopConfig)
	})
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"18:30", 1110, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "00:00", FormatClockTime(0))
	assert.Equal(t, "09:00", FormatClockTime(540))
	assert.Equal(t, "18:30", FormatClockTime(1110))
	assert.Equal(t, "23:59", FormatClockTime(1439))
}

func TestValidateHours(t *testing.T) {
	week := func() []WorkingHoursEntry {
		entries := make([]WorkingHoursEntry, 7)
		for d := 0; d < 7; d++ {
			entries[d] = WorkingHoursEntry{Weekday: d, OpenTime: "09:00", CloseTime: "18:00"}
		}
		return entries
	}

	t.Run("valid week", func(t *testing.T) {
		hours, err := validateHours(week())
		require.NoError(t, err)
		require.Len(t, hours, 7)
		assert.Equal(t, 540, hours[0].OpenMinute)
		assert.Equal(t, 1080, hours[0].CloseMinute)
	})

	t.Run("closed day skips time parsing", func(t *testing.T) {
		entries := week()
		entries[0] = WorkingHoursEntry{Weekday: 0, IsClosed: true}
		hours, err := validateHours(entries)
		require.NoError(t, err)
		assert.True(t, hours[0].IsClosed)
	})

	t.Run("too few entries", func(t *testing.T) {
		_, err := validateHours(week()[:5])
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("duplicate weekday", func(t *testing.T) {
		entries := week()
		entries[6].Weekday = 0
		_, err := validateHours(entries)
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("open equals close", func(t *testing.T) {
		entries := week()
		entries[2].CloseTime = "09:00"
		_, err := validateHours(entries)
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("bad time string", func(t *testing.T) {
		entries := week()
		entries[3].OpenTime = "late"
		_, err := validateHours(entries)
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})
}
