package kafka

import "clinicbook/pkg/model"

// Topics for the appointment event stream.
const (
	TopicAppointments    = "clinic.appointments"
	TopicAppointmentsDLQ = "clinic.appointments.dlq"
)

// Event types carried in the event-type header.
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent is the payload published on every appointment state
// change. The notifier turns these into patient reminders.
type AppointmentEvent struct {
	EventType     string             `json:"event_type"`
	AppointmentID string             `json:"appointment_id"`
	LocationID    string             `json:"location_id"`
	Appointment   *model.Appointment `json:"appointment,omitempty"`
	OccurredAt    string             `json:"occurred_at"`
}
