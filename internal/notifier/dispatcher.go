package notifier

import (
	"context"
	"fmt"

	"clinicbook/pkg/kafka"
	"clinicbook/pkg/logger"
)

// Dispatcher consumes appointment events and emits patient notifications.
// Delivery is a structured log line per notification; wiring a real SMS or
// email channel replaces notify only.
type Dispatcher struct {
	log *logger.Logger
}

func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Handle is the consumer callback. Undecodable payloads are permanent
// failures and go straight to the DLQ instead of burning retries.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	var event kafka.AppointmentEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("undecodable appointment event", err)
	}

	if event.Appointment == nil {
		return kafka.NewPermanentError(fmt.Sprintf("appointment event %s has no appointment payload", msg.GetEventID()), nil)
	}

	switch event.EventType {
	case kafka.EventAppointmentCreated:
		d.notify(event, "Your appointment request was received")
	case kafka.EventAppointmentConfirmed:
		d.notify(event, "Your appointment is confirmed")
	case kafka.EventAppointmentCancelled:
		d.notify(event, "Your appointment was cancelled")
	default:
		d.log.Warn("Unknown appointment event type, skipping",
			"event_type", event.EventType,
			"event_id", msg.GetEventID(),
		)
	}

	return nil
}

func (d *Dispatcher) notify(event kafka.AppointmentEvent, text string) {
	a := event.Appointment
	d.log.Info("Dispatching patient notification",
		"event_type", event.EventType,
		"appointment_id", event.AppointmentID,
		"patient_phone", a.PatientPhone,
		"date", a.Date,
		"start", a.Start,
		"treatment", a.TreatmentName,
		"message", text,
	)
}
