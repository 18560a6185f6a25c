// Package validation registers the custom validator tags shared by every
// domain validator: clock_time for "HH:MM" values and day_key for
// "YYYY-MM-DD" values.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"clinicbook/pkg/timeutil"
)

// Register installs the clinic-specific tags on a validator instance.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		return fmt.Errorf("failed to register 'clock_time' validator: %w", err)
	}
	if err := v.RegisterValidation("day_key", validateDayKey); err != nil {
		return fmt.Errorf("failed to register 'day_key' validator: %w", err)
	}
	return nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	return timeutil.IsValidClock(fl.Field().String())
}

func validateDayKey(fl validator.FieldLevel) bool {
	return timeutil.IsValidDay(fl.Field().String())
}
