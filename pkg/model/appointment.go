package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is one confirmed or pending visit. Date and Start are kept as
// reference-zone day-key and clock strings so that slot matching is an exact
// string comparison, never an instant comparison subject to zone drift.
// Treatment name and duration are denormalized at booking time so history
// survives later edits to the location's treatment list.
type Appointment struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	LocationID      string    `json:"location_id" bson:"location_id" validate:"required,mongodb"`
	TreatmentID     string    `json:"treatment_id" bson:"treatment_id" validate:"required,uuid4"`
	TreatmentName   string    `json:"treatment_name" bson:"treatment_name" validate:"required,min=2,max=100"`
	DurationMinutes int       `json:"duration_min" bson:"duration_min" validate:"required,min=5,max=480"`
	Date            string    `json:"date" bson:"date" validate:"required,day_key"`
	Start           string    `json:"start" bson:"start" validate:"required,clock_time"`
	PatientName     string    `json:"patient_name" bson:"patient_name" validate:"required,min=2,max=100"`
	PatientPhone    string    `json:"patient_phone" bson:"patient_phone" validate:"required,e164"`
	Notes           string    `json:"notes,omitempty" bson:"notes" validate:"omitempty,max=500"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type AppointmentUpdate struct {
	TreatmentID     string  `json:"treatment_id,omitempty" validate:"omitempty,uuid4"`
	TreatmentName   string  `json:"treatment_name,omitempty" validate:"omitempty,min=2,max=100"`
	DurationMinutes *int    `json:"duration_min,omitempty" validate:"omitempty,min=5,max=480"`
	Date            string  `json:"date,omitempty" validate:"omitempty,day_key"`
	Start           string  `json:"start,omitempty" validate:"omitempty,clock_time"`
	PatientName     string  `json:"patient_name,omitempty" validate:"omitempty,min=2,max=100"`
	PatientPhone    string  `json:"patient_phone,omitempty" validate:"omitempty,e164"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled reports whether a cancellation is still meaningful.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}
