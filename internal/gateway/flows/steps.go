package flows

import (
	"fmt"
	"net/http"

	"clinicbook/internal/availability"
	"clinicbook/internal/gateway/core"
	"clinicbook/pkg/client"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
)

// Context keys shared across flows. Input keys come from the service layer,
// Process keys are produced by one step and consumed by later ones.
const (
	LOCATION_ID  = "location_id"
	TREATMENT_ID = "treatment_id"
	DATE         = "date"
	FROM         = "from"
	DAYS         = "days"
	APPOINTMENT  = "appointment"
	HEADERS      = "headers"

	LOCATION  = "location"
	TREATMENT = "treatment"
	SCHEDULE  = "schedule"
	BOOKED    = "booked"

	OUT_SLOTS       = "slots"
	OUT_DAYS        = "days"
	OUT_APPOINTMENT = "appointment"

	MaxBookedPerDayFetch = 200
)

// translateUpstream maps a domain-service error response onto an AppError so
// the gateway relays the upstream status instead of flattening it to 500.
func translateUpstream(resp *client.Response, resource string) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.NotFound(resource)
	case http.StatusConflict:
		return apperrors.Conflict(client.GetErrorMessage(resp))
	case http.StatusUnprocessableEntity:
		return apperrors.Validation(client.GetErrorMessage(resp), nil)
	case http.StatusBadRequest:
		return apperrors.InvalidInput(client.GetErrorMessage(resp))
	default:
		return apperrors.Internal(
			fmt.Sprintf("%s service request failed", resource),
			fmt.Errorf("upstream %s", resp.ToString()),
		)
	}
}

// LoadLocation fetches the location named by LOCATION_ID and rejects
// inactive locations.
func LoadLocation(ctx *core.FlowContext) error {
	locationID := ctx.InputString(LOCATION_ID)
	if core.IsMissing(locationID) {
		return core.MissingParamErr(LOCATION_ID)
	}

	resp, err := ctx.Deps.Client.Locations.GetByID(ctx.Ctx, locationID)
	if err != nil {
		return apperrors.Unavailable("Locations service")
	}
	if resp.StatusCode != http.StatusOK {
		return translateUpstream(resp, "Location")
	}

	location, err := ctx.Deps.Client.Locations.DecodeLocation(resp)
	if err != nil {
		return err
	}
	if !location.Active {
		return apperrors.NotFoundWithID("Location", locationID)
	}

	ctx.Process[LOCATION] = location
	return nil
}

// ResolveTreatment picks the requested treatment out of the loaded location.
func ResolveTreatment(ctx *core.FlowContext) error {
	treatmentID := ctx.InputString(TREATMENT_ID)
	if core.IsMissing(treatmentID) {
		return core.MissingParamErr(TREATMENT_ID)
	}

	location := ctx.Process[LOCATION].(*model.Location)
	treatment := location.TreatmentByID(treatmentID)
	if treatment == nil || !treatment.Active {
		return apperrors.NotFoundWithID("Treatment", treatmentID)
	}

	ctx.Process[TREATMENT] = treatment
	return nil
}

// LoadSchedule fetches the schedule of the loaded location.
func LoadSchedule(ctx *core.FlowContext) error {
	location := ctx.Process[LOCATION].(*model.Location)

	resp, err := ctx.Deps.Client.Schedules.GetByLocation(ctx.Ctx, location.ID)
	if err != nil {
		return apperrors.Unavailable("Schedules service")
	}
	if resp.StatusCode != http.StatusOK {
		return translateUpstream(resp, "Schedule")
	}

	schedule, err := ctx.Deps.Client.Schedules.DecodeSchedule(resp)
	if err != nil {
		return err
	}

	ctx.Process[SCHEDULE] = schedule
	return nil
}

// LoadBookedInstants fetches the active appointments of the target date and
// reduces them to slot coordinates.
func LoadBookedInstants(ctx *core.FlowContext) error {
	location := ctx.Process[LOCATION].(*model.Location)
	date := ctx.InputString(DATE)
	if core.IsMissing(date) {
		return core.MissingParamErr(DATE)
	}

	resp, err := ctx.Deps.Client.Appointments.Search(ctx.Ctx, location.ID, date, date, "", MaxBookedPerDayFetch, 0)
	if err != nil {
		return apperrors.Unavailable("Appointments service")
	}
	if resp.StatusCode != http.StatusOK {
		return translateUpstream(resp, "Appointment")
	}

	appointments, _, err := ctx.Deps.Client.Appointments.DecodeAppointments(resp)
	if err != nil {
		return err
	}

	booked := make([]availability.BookedInstant, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		booked = append(booked, availability.BookedInstant{Date: a.Date, Start: a.Start})
	}

	ctx.Process[BOOKED] = booked
	return nil
}

// ComputeSlots runs the availability calculator over the gathered state.
func ComputeSlots(ctx *core.FlowContext) error {
	schedule := ctx.Process[SCHEDULE].(*model.Schedule)
	treatment := ctx.Process[TREATMENT].(*model.Treatment)
	booked := ctx.Process[BOOKED].([]availability.BookedInstant)

	slots, err := ctx.Deps.Calc.SlotsForDate(availability.Request{
		Date:            ctx.InputString(DATE),
		Weekly:          schedule.Weekly,
		Overrides:       schedule.Overrides,
		DurationMinutes: treatment.DurationMinutes,
		Booked:          booked,
	})
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	ctx.Output[OUT_SLOTS] = slots
	return nil
}

// horizon bounds the selectable-days scan.
func horizon(requested int) int {
	if requested <= 0 {
		return config.DefaultSelectableDaysHorizon
	}
	if requested > config.MaxSelectableDaysHorizon {
		return config.MaxSelectableDaysHorizon
	}
	return requested
}
