// Package availability computes bookable time slots for one location and
// date. The calculator is a pure function over schedule configuration and
// already-booked instants; it performs no I/O and never consults local time.
package availability

import (
	"time"

	"clinicbook/pkg/model"
	"clinicbook/pkg/timeutil"
)

// DefaultSlotStepMinutes is the stepping used when no service duration is
// selected. Slot generation currently requires a positive duration, so this
// fallback is not reachable through the public entry points; it is kept
// because the step is also the documented default for configuration.
const DefaultSlotStepMinutes = 30

// Slot is one candidate start time on the requested date.
type Slot struct {
	Minute int    `json:"minute"`
	Start  string `json:"start"`
	Label  string `json:"label"`
	Booked bool   `json:"booked"`
}

// BookedInstant marks an occupied start time. Date is a reference-zone day
// key and Start an "HH:MM" clock value, matching how appointments are stored.
type BookedInstant struct {
	Date  string
	Start string
}

// Calculator resolves slots in a fixed reference timezone.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	return &Calculator{loc: loc}
}

// Request carries everything SlotsForDate needs. Booked entries whose Date
// differs from Date are ignored.
type Request struct {
	Date            string
	Weekly          model.WeeklyHours
	Overrides       []model.DateOverride
	DurationMinutes int
	Booked          []BookedInstant
}

// SlotsForDate produces the ordered slot list for one date.
//
// An override containing the date wins over weekly hours: closed means no
// slots at all, a non-empty window list replaces the weekly windows, and an
// empty list without closed falls through to the weekly entry. Booked slots
// stay in the output flagged rather than filtered, so callers can render
// them greyed out.
func (c *Calculator) SlotsForDate(req Request) ([]Slot, error) {
	windows, closed, err := c.effectiveWindows(req.Date, req.Weekly, req.Overrides)
	if err != nil {
		return nil, err
	}
	if closed || req.DurationMinutes <= 0 || len(windows) == 0 {
		return []Slot{}, nil
	}

	booked := bookedSet(req.Date, req.Booked)

	step := req.DurationMinutes
	if step <= 0 {
		step = DefaultSlotStepMinutes
	}

	slots := []Slot{}
	for _, w := range windows {
		if !w.Enabled() {
			continue
		}

		start, err := timeutil.ParseClock(w.Start)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ParseClock(w.End)
		if err != nil {
			return nil, err
		}
		if end-start < req.DurationMinutes {
			continue
		}

		for minute := start; minute+req.DurationMinutes <= end; minute += step {
			clock := timeutil.FormatClock(minute)
			slots = append(slots, Slot{
				Minute: minute,
				Start:  clock,
				Label:  timeutil.ClockLabel(minute),
				Booked: booked[clock],
			})
		}
	}

	return slots, nil
}

// IsDateSelectable reports whether a date can be offered at all: not in the
// past (day-key comparison in the reference zone) and with at least one
// active effective window.
func (c *Calculator) IsDateSelectable(date string, weekly model.WeeklyHours, overrides []model.DateOverride, now time.Time) (bool, error) {
	if timeutil.DayBefore(date, timeutil.Today(now, c.loc)) {
		return false, nil
	}

	windows, closed, err := c.effectiveWindows(date, weekly, overrides)
	if err != nil {
		return false, err
	}
	if closed {
		return false, nil
	}

	for _, w := range windows {
		if w.Enabled() {
			return true, nil
		}
	}
	return false, nil
}

// effectiveWindows applies override precedence for one date. The first
// override whose range contains the date decides; the override list order is
// the precedence order.
func (c *Calculator) effectiveWindows(date string, weekly model.WeeklyHours, overrides []model.DateOverride) ([]model.TimeWindow, bool, error) {
	for _, o := range overrides {
		if !o.Contains(date) {
			continue
		}
		if o.Closed {
			return nil, true, nil
		}
		if len(o.Windows) > 0 {
			return o.Windows, false, nil
		}
		// Empty replacement list: the override has no effect on windows.
		break
	}

	weekday, err := timeutil.Weekday(date, c.loc)
	if err != nil {
		return nil, false, err
	}

	day := weekly.ForWeekday(weekday)
	if !day.Enabled {
		return nil, false, nil
	}
	return day.Windows, false, nil
}

func bookedSet(date string, booked []BookedInstant) map[string]bool {
	set := make(map[string]bool, len(booked))
	for _, b := range booked {
		if b.Date == date {
			set[b.Start] = true
		}
	}
	return set
}
