package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"clinicbook/pkg/model"
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

type LocationValidator struct {
	validate *validator.Validate
}

func NewLocationValidator() (*LocationValidator, error) {
	v := validator.New()
	if err := validation.Register(v); err != nil {
		return nil, err
	}

	return &LocationValidator{validate: v}, nil
}

func (v *LocationValidator) Validate(loc *model.Location) error {
	if err := v.validate.Struct(loc); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}

	return v.validateTreatments(loc)
}

// validateTreatments enforces uniqueness rules the struct tags cannot express.
func (v *LocationValidator) validateTreatments(loc *model.Location) error {
	var errs ValidationErrors

	seenIDs := make(map[string]bool, len(loc.Treatments))
	seenNames := make(map[string]bool, len(loc.Treatments))
	for _, t := range loc.Treatments {
		if t.ID != "" && seenIDs[t.ID] {
			errs = append(errs, ValidationError{
				Field:   "treatments",
				Message: fmt.Sprintf("duplicate treatment id %q", t.ID),
			})
		}
		seenIDs[t.ID] = true

		if seenNames[t.Name] {
			errs = append(errs, ValidationError{
				Field:   "treatments",
				Message: fmt.Sprintf("duplicate treatment name %q", t.Name),
			})
		}
		seenNames[t.Name] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
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
