package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"clinicbook/pkg/model"
	"clinicbook/pkg/timeutil"
	"clinicbook/pkg/validation"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type ScheduleValidator struct {
	validate *validator.Validate
}

func NewScheduleValidator() (*ScheduleValidator, error) {
	v := validator.New()
	if err := validation.Register(v); err != nil {
		return nil, err
	}

	return &ScheduleValidator{validate: v}, nil
}

func (v *ScheduleValidator) Validate(sc *model.Schedule) error {
	if err := v.validate.Struct(sc); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}

	return v.validateRules(sc)
}

// validateRules checks the ordering constraints the struct tags cannot
// express: window start before end, and override ranges that are not
// inverted.
func (v *ScheduleValidator) validateRules(sc *model.Schedule) error {
	var errs ValidationErrors

	days := map[string]model.DayHours{
		"monday":    sc.Weekly.Monday,
		"tuesday":   sc.Weekly.Tuesday,
		"wednesday": sc.Weekly.Wednesday,
		"thursday":  sc.Weekly.Thursday,
		"friday":    sc.Weekly.Friday,
		"saturday":  sc.Weekly.Saturday,
		"sunday":    sc.Weekly.Sunday,
	}
	for name, day := range days {
		errs = append(errs, validateWindows(name, day.Windows)...)
	}

	for i, o := range sc.Overrides {
		field := fmt.Sprintf("overrides[%d]", i)
		if o.EndDate < o.StartDate {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("end_date %s is before start_date %s", o.EndDate, o.StartDate),
			})
		}
		if o.Closed && len(o.Windows) > 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "a closed override cannot carry replacement windows",
			})
		}
		errs = append(errs, validateWindows(field, o.Windows)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateWindows(field string, windows []model.TimeWindow) ValidationErrors {
	var errs ValidationErrors

	for i, w := range windows {
		start, errStart := timeutil.ParseClock(w.Start)
		end, errEnd := timeutil.ParseClock(w.End)
		if errStart != nil || errEnd != nil {
			// Struct tags already flag malformed clocks.
			continue
		}
		if end <= start {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.windows[%d]", field, i),
				Message: fmt.Sprintf("window end %s must be after start %s", w.End, w.Start),
			})
		}
	}

	return errs
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: fmt.Sprintf("failed %q validation", err.Tag()),
		})
	}

	return validationErrors
}
