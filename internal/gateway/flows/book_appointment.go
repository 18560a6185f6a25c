package flows

import (
	"net/http"

	"clinicbook/internal/availability"
	"clinicbook/internal/gateway/core"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
)

const BookAppointmentFlowName = "book_appointment"

// BookAppointmentFlow validates a booking request against live availability
// and forwards it to the appointments service. The service performs its own
// lock-and-check, so a stale gateway view surfaces as an upstream conflict
// rather than a double booking.
type BookAppointmentFlow struct{}

func (BookAppointmentFlow) Name() string { return BookAppointmentFlowName }

func (BookAppointmentFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("load location", LoadLocation),
		core.NewStep("resolve treatment", ResolveTreatment),
		core.NewStep("denormalize treatment", DenormalizeTreatment),
		core.NewStep("load schedule", LoadSchedule),
		core.NewStep("load booked instants", LoadBookedInstants),
		core.NewStep("verify slot available", VerifySlotAvailable),
		core.NewStep("create appointment", CreateAppointment),
	}
}

// DenormalizeTreatment copies the treatment's name and duration onto the
// appointment so the booking stays readable after later treatment edits.
func DenormalizeTreatment(ctx *core.FlowContext) error {
	appointment := ctx.Input[APPOINTMENT].(*model.Appointment)
	treatment := ctx.Process[TREATMENT].(*model.Treatment)

	appointment.TreatmentName = treatment.Name
	appointment.DurationMinutes = treatment.DurationMinutes
	return nil
}

// VerifySlotAvailable recomputes the day's slots and requires the requested
// start to be an offered, unbooked slot.
func VerifySlotAvailable(ctx *core.FlowContext) error {
	appointment := ctx.Input[APPOINTMENT].(*model.Appointment)
	schedule := ctx.Process[SCHEDULE].(*model.Schedule)
	treatment := ctx.Process[TREATMENT].(*model.Treatment)
	booked := ctx.Process[BOOKED].([]availability.BookedInstant)

	slots, err := ctx.Deps.Calc.SlotsForDate(availability.Request{
		Date:            appointment.Date,
		Weekly:          schedule.Weekly,
		Overrides:       schedule.Overrides,
		DurationMinutes: treatment.DurationMinutes,
		Booked:          booked,
	})
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	for _, slot := range slots {
		if slot.Start != appointment.Start {
			continue
		}
		if slot.Booked {
			return apperrors.Conflict("The requested slot is already booked")
		}
		return nil
	}

	return apperrors.InvalidInput("The requested start time is not an offered slot on this date")
}

// CreateAppointment posts the booking to the appointments service and
// relays the created document.
func CreateAppointment(ctx *core.FlowContext) error {
	appointment := ctx.Input[APPOINTMENT].(*model.Appointment)
	headers, _ := ctx.Input[HEADERS].(map[string]string)

	resp, err := ctx.Deps.Client.Appointments.Create(ctx.Ctx, appointment, headers)
	if err != nil {
		return apperrors.Unavailable("Appointments service")
	}
	if resp.StatusCode != http.StatusCreated {
		return translateUpstream(resp, "Appointment")
	}

	created, err := ctx.Deps.Client.Appointments.DecodeAppointment(resp)
	if err != nil {
		return err
	}

	ctx.Output[OUT_APPOINTMENT] = created
	return nil
}
