package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/pkg/model"
)

// 2026-08-25 is a Tuesday in every zone relevant here.
const testDate = "2026-08-25"

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func boolPtr(b bool) *bool { return &b }

func weeklyTuesday(windows ...model.TimeWindow) model.WeeklyHours {
	return model.WeeklyHours{
		Tuesday: model.DayHours{Enabled: true, Windows: windows},
	}
}

func starts(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func TestSixtyMinuteSlots(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:            testDate,
		Weekly:          weeklyTuesday(model.TimeWindow{Start: "09:00", End: "12:00"}),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, starts(slots))
}

func TestFortyFiveMinuteSlots(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:            testDate,
		Weekly:          weeklyTuesday(model.TimeWindow{Start: "09:00", End: "12:00"}),
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:45", "10:30", "11:15"}, starts(slots))
}

// Candidate count per window is floor((D-S)/S)+1 where D is the window span
// and S the duration, whenever D >= S.
func TestSlotCountFormula(t *testing.T) {
	calc := NewCalculator(newYork(t))

	cases := []struct {
		window   model.TimeWindow
		duration int
	}{
		{model.TimeWindow{Start: "09:00", End: "12:00"}, 60},
		{model.TimeWindow{Start: "09:00", End: "12:00"}, 45},
		{model.TimeWindow{Start: "08:00", End: "20:00"}, 25},
		{model.TimeWindow{Start: "10:00", End: "10:30"}, 30},
		{model.TimeWindow{Start: "00:00", End: "23:59"}, 7},
	}

	for _, tc := range cases {
		slots, err := calc.SlotsForDate(Request{
			Date:            testDate,
			Weekly:          weeklyTuesday(tc.window),
			DurationMinutes: tc.duration,
		})
		require.NoError(t, err)

		startMin, _ := time.Parse("15:04", tc.window.Start)
		endMin, _ := time.Parse("15:04", tc.window.End)
		span := int(endMin.Sub(startMin).Minutes())
		want := (span-tc.duration)/tc.duration + 1

		assert.Len(t, slots, want, "window %s-%s duration %d", tc.window.Start, tc.window.End, tc.duration)
	}
}

func TestZeroDurationYieldsNoSlots(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:   testDate,
		Weekly: weeklyTuesday(model.TimeWindow{Start: "09:00", End: "17:00"}),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDisabledWeekdayYieldsNoSlots(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date: testDate,
		Weekly: model.WeeklyHours{
			Tuesday: model.DayHours{Enabled: false, Windows: []model.TimeWindow{{Start: "09:00", End: "17:00"}}},
		},
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestWindowShorterThanDurationDiscarded(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date: testDate,
		Weekly: weeklyTuesday(
			model.TimeWindow{Start: "09:00", End: "09:20"},
			model.TimeWindow{Start: "13:00", End: "14:00"},
		),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"13:00", "13:30"}, starts(slots))
}

func TestInactiveWindowDiscarded(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date: testDate,
		Weekly: weeklyTuesday(
			model.TimeWindow{Start: "09:00", End: "10:00", IsActive: boolPtr(false)},
			model.TimeWindow{Start: "13:00", End: "14:00"},
		),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"13:00"}, starts(slots))
}

func TestClosedOverrideWins(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:   testDate,
		Weekly: weeklyTuesday(model.TimeWindow{Start: "09:00", End: "17:00"}),
		Overrides: []model.DateOverride{
			{StartDate: "2026-08-24", EndDate: "2026-08-26", Closed: true},
		},
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestOverrideWindowsReplaceWeekly(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:   testDate,
		Weekly: weeklyTuesday(model.TimeWindow{Start: "09:00", End: "17:00"}),
		Overrides: []model.DateOverride{
			{
				StartDate: testDate,
				EndDate:   testDate,
				Windows:   []model.TimeWindow{{Start: "14:00", End: "16:00"}},
			},
		},
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"14:00", "15:00"}, starts(slots))
}

// An override with neither closed nor replacement windows leaves the weekly
// configuration in force.
func TestEmptyOverrideFallsThroughToWeekly(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:   testDate,
		Weekly: weeklyTuesday(model.TimeWindow{Start: "09:00", End: "11:00"}),
		Overrides: []model.DateOverride{
			{StartDate: testDate, EndDate: testDate},
		},
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00"}, starts(slots))
}

func TestOverrideOutsideRangeIgnored(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:   testDate,
		Weekly: weeklyTuesday(model.TimeWindow{Start: "09:00", End: "11:00"}),
		Overrides: []model.DateOverride{
			{StartDate: "2026-09-01", EndDate: "2026-09-30", Closed: true},
		},
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Len(t, slots, 2)
}

func TestBookedFlagExactMatchOnly(t *testing.T) {
	calc := NewCalculator(newYork(t))

	req := Request{
		Date:            testDate,
		Weekly:          weeklyTuesday(model.TimeWindow{Start: "09:00", End: "12:00"}),
		DurationMinutes: 60,
		Booked: []BookedInstant{
			{Date: testDate, Start: "10:00"},
		},
	}

	slots, err := calc.SlotsForDate(req)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.False(t, slots[0].Booked)
	assert.True(t, slots[1].Booked, "10:00 should be booked")
	assert.False(t, slots[2].Booked)

	// One minute either side of the booked instant must not flag the slot.
	for _, off := range []string{"09:59", "10:01"} {
		req.Booked = []BookedInstant{{Date: testDate, Start: off}}
		slots, err := calc.SlotsForDate(req)
		require.NoError(t, err)
		for _, s := range slots {
			assert.False(t, s.Booked, "booked at %s should not flag slot %s", off, s.Start)
		}
	}
}

func TestBookedOnOtherDayIgnored(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:            testDate,
		Weekly:          weeklyTuesday(model.TimeWindow{Start: "09:00", End: "12:00"}),
		DurationMinutes: 60,
		Booked: []BookedInstant{
			{Date: "2026-08-26", Start: "10:00"},
		},
	})
	require.NoError(t, err)

	for _, s := range slots {
		assert.False(t, s.Booked)
	}
}

func TestSlotsForDateIsIdempotent(t *testing.T) {
	calc := NewCalculator(newYork(t))

	req := Request{
		Date:            testDate,
		Weekly:          weeklyTuesday(model.TimeWindow{Start: "09:00", End: "12:00"}),
		DurationMinutes: 45,
		Booked:          []BookedInstant{{Date: testDate, Start: "09:45"}},
	}

	first, err := calc.SlotsForDate(req)
	require.NoError(t, err)
	second, err := calc.SlotsForDate(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSlotsAreOrdered(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date: testDate,
		Weekly: weeklyTuesday(
			model.TimeWindow{Start: "08:00", End: "10:00"},
			model.TimeWindow{Start: "13:00", End: "15:00"},
		),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.Greater(t, slots[i].Minute, slots[i-1].Minute)
	}
}

func TestSlotLabels(t *testing.T) {
	calc := NewCalculator(newYork(t))

	slots, err := calc.SlotsForDate(Request{
		Date:            testDate,
		Weekly:          weeklyTuesday(model.TimeWindow{Start: "09:00", End: "15:00"}),
		DurationMinutes: 180,
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "9:00 AM", slots[0].Label)
	assert.Equal(t, "12:00 PM", slots[1].Label)
}

func TestIsDateSelectable(t *testing.T) {
	calc := NewCalculator(newYork(t))
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, newYork(t))

	weekly := weeklyTuesday(model.TimeWindow{Start: "09:00", End: "17:00"})

	ok, err := calc.IsDateSelectable(testDate, weekly, nil, now)
	require.NoError(t, err)
	assert.True(t, ok, "today with open hours should be selectable")

	ok, err = calc.IsDateSelectable("2026-08-24", weekly, nil, now)
	require.NoError(t, err)
	assert.False(t, ok, "yesterday is never selectable")

	ok, err = calc.IsDateSelectable("2026-08-26", weekly, nil, now)
	require.NoError(t, err)
	assert.False(t, ok, "wednesday has no weekly hours")

	ok, err = calc.IsDateSelectable(testDate, weekly, []model.DateOverride{
		{StartDate: testDate, EndDate: testDate, Closed: true},
	}, now)
	require.NoError(t, err)
	assert.False(t, ok, "closed override blocks selection")

	inactive := weeklyTuesday(model.TimeWindow{Start: "09:00", End: "17:00", IsActive: boolPtr(false)})
	ok, err = calc.IsDateSelectable(testDate, inactive, nil, now)
	require.NoError(t, err)
	assert.False(t, ok, "only inactive windows means not selectable")
}
