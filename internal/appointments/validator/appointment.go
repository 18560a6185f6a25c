package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"clinicbook/pkg/model"
	"clinicbook/pkg/validation"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

type AppointmentValidator struct {
	validate *validator.Validate
}

func NewAppointmentValidator() (*AppointmentValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := validation.Register(v); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}
	return &AppointmentValidator{validate: v}, nil
}

func (av *AppointmentValidator) Validate(appointment *model.Appointment) error {
	if err := av.validate.Struct(appointment); err != nil {
		return av.translate(err)
	}
	return nil
}

func (av *AppointmentValidator) ValidateUpdate(updates *model.AppointmentUpdate) error {
	if err := av.validate.Struct(updates); err != nil {
		return av.translate(err)
	}
	return nil
}

func (av *AppointmentValidator) translate(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errs ValidationErrors
	for _, fieldErr := range validationErrors {
		errs = append(errs, ValidationError{
			Field:   fieldErr.Field(),
			Message: fmt.Sprintf("failed %q validation", fieldErr.Tag()),
		})
	}
	return errs
}
