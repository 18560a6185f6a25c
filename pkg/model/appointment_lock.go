package model

import "time"

// AppointmentLock is a short-lived advisory lock on one (location, date,
// start) slot, taken while a booking is being written. The _id is the slot
// coordinate string, so a duplicate-key error on insert means the slot is
// being booked concurrently. ExpiresAt is enforced by a TTL index so crashed
// writers cannot leave a slot locked.
type AppointmentLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}
