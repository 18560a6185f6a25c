package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:00", 540, true},
		{"12:30", 750, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:00am", 0, false},
		{"", 0, false},
		{"09:60", 0, false},
		{"9:00", 0, false},
		{"09:5", 0, false},
		{"9:5", 0, false},
		{" 09:00", 0, false},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.ok {
			require.NoError(t, err, "ParseClock(%q)", tc.in)
			assert.Equal(t, tc.minutes, got, "ParseClock(%q)", tc.in)
		} else {
			assert.Error(t, err, "ParseClock(%q)", tc.in)
		}
	}
}

func TestIsValidClock_RequiresZeroPadding(t *testing.T) {
	assert.True(t, IsValidClock("09:00"))
	assert.False(t, IsValidClock("9:00"))
}

func TestFormatClock_RoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 540, 555, 719, 720, 1439} {
		parsed, err := ParseClock(FormatClock(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestClockLabel(t *testing.T) {
	assert.Equal(t, "9:00 AM", ClockLabel(540))
	assert.Equal(t, "12:00 PM", ClockLabel(720))
	assert.Equal(t, "12:00 AM", ClockLabel(0))
	assert.Equal(t, "11:15 PM", ClockLabel(23*60+15))
}

func TestDayKey_UsesReferenceZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-01 02:30 UTC is still 2026-02-28 in New York.
	instant := time.Date(2026, 3, 1, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-28", DayKey(instant, ny))
	assert.Equal(t, "2026-03-01", DayKey(instant, time.UTC))
}

func TestWeekday(t *testing.T) {
	// 2026-08-25 is a Tuesday.
	wd, err := Weekday("2026-08-25", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, wd)
}

func TestDayInRange(t *testing.T) {
	assert.True(t, DayInRange("2026-08-25", "2026-08-25", "2026-08-25"))
	assert.True(t, DayInRange("2026-08-25", "2026-08-01", "2026-08-31"))
	assert.False(t, DayInRange("2026-09-01", "2026-08-01", "2026-08-31"))
	assert.False(t, DayInRange("2026-07-31", "2026-08-01", "2026-08-31"))
}

func TestNextDay(t *testing.T) {
	next, err := NextDay("2026-08-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", next)

	next, err = NextDay("2026-12-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2027-01-01", next)
}
