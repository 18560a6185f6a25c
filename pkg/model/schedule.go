package model

import "time"

// TimeWindow is one contiguous open interval within a day, bounded by "HH:MM"
// clock values. IsActive is a pointer so that override windows may omit it:
// a nil flag counts as active.
type TimeWindow struct {
	Start    string `json:"start" bson:"start" validate:"required,clock_time"`
	End      string `json:"end" bson:"end" validate:"required,clock_time"`
	IsActive *bool  `json:"is_active,omitempty" bson:"is_active,omitempty"`
}

// Enabled reports whether the window participates in availability.
func (w TimeWindow) Enabled() bool {
	return w.IsActive == nil || *w.IsActive
}

// DayHours is the recurring configuration for a single weekday.
type DayHours struct {
	Enabled bool         `json:"enabled" bson:"enabled"`
	Windows []TimeWindow `json:"windows,omitempty" bson:"windows" validate:"omitempty,max=10,dive"`
}

// WeeklyHours carries one DayHours per weekday.
type WeeklyHours struct {
	Monday    DayHours `json:"monday" bson:"monday"`
	Tuesday   DayHours `json:"tuesday" bson:"tuesday"`
	Wednesday DayHours `json:"wednesday" bson:"wednesday"`
	Thursday  DayHours `json:"thursday" bson:"thursday"`
	Friday    DayHours `json:"friday" bson:"friday"`
	Saturday  DayHours `json:"saturday" bson:"saturday"`
	Sunday    DayHours `json:"sunday" bson:"sunday"`
}

// ForWeekday returns the configuration for the given weekday.
func (w WeeklyHours) ForWeekday(day time.Weekday) DayHours {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// DateOverride supersedes WeeklyHours for every date in [StartDate, EndDate].
// Closed marks the whole range closed; otherwise a non-empty Windows list
// replaces the weekly windows. An empty Windows list with Closed=false has no
// effect on windows (the range stays on weekly hours).
type DateOverride struct {
	ID        string       `json:"id" bson:"id" validate:"omitempty,uuid4"`
	StartDate string       `json:"start_date" bson:"start_date" validate:"required,day_key"`
	EndDate   string       `json:"end_date" bson:"end_date" validate:"required,day_key"`
	Closed    bool         `json:"closed" bson:"closed"`
	Windows   []TimeWindow `json:"windows,omitempty" bson:"windows" validate:"omitempty,max=10,dive"`
	Reason    string       `json:"reason,omitempty" bson:"reason" validate:"omitempty,max=200"`
}

// Contains reports whether the override applies to the given day key.
func (o DateOverride) Contains(dayKey string) bool {
	return dayKey >= o.StartDate && dayKey <= o.EndDate
}

// Schedule is the full booking configuration of one location: recurring
// weekly hours plus date-range exceptions. One document per location.
type Schedule struct {
	ID         string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	LocationID string         `json:"location_id" bson:"location_id" validate:"required,mongodb"`
	Weekly     WeeklyHours    `json:"weekly" bson:"weekly"`
	Overrides  []DateOverride `json:"overrides,omitempty" bson:"overrides" validate:"omitempty,max=100,dive"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time      `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type ScheduleUpdate struct {
	Weekly *WeeklyHours `json:"weekly,omitempty"`
}
