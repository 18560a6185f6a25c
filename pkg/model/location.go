package model

import "time"

// Location is one physical clinic site. Treatments are embedded because the
// availability flow always needs a treatment's duration together with the
// location it is booked at.
type Location struct {
	ID         string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name       string      `json:"name" bson:"name" validate:"required,min=2,max=100"`
	City       string      `json:"city" bson:"city" validate:"required,min=2,max=50"`
	Address    string      `json:"address" bson:"address" validate:"required,min=2,max=200"`
	Phone      string      `json:"phone" bson:"phone" validate:"required,e164"`
	Labels     []string    `json:"labels,omitempty" bson:"labels" validate:"omitempty,max=10,dive,required"`
	Treatments []Treatment `json:"treatments,omitempty" bson:"treatments" validate:"omitempty,max=100,dive"`
	Active     bool        `json:"active" bson:"active"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Treatment is a bookable service offered at a location. DurationMinutes is
// the ServiceDuration fed into the availability calculator.
type Treatment struct {
	ID              string  `json:"id" bson:"id" validate:"omitempty,uuid4"`
	Name            string  `json:"name" bson:"name" validate:"required,min=2,max=100"`
	DurationMinutes int     `json:"duration_min" bson:"duration_min" validate:"required,min=5,max=480"`
	Price           float64 `json:"price,omitempty" bson:"price" validate:"omitempty,min=0"`
	Active          bool    `json:"active" bson:"active"`
}

type LocationUpdate struct {
	Name       string       `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	City       string       `json:"city,omitempty" validate:"omitempty,min=2,max=50"`
	Address    string       `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	Phone      string       `json:"phone,omitempty" validate:"omitempty,e164"`
	Labels     *[]string    `json:"labels,omitempty" validate:"omitempty,max=10,dive,required"`
	Treatments *[]Treatment `json:"treatments,omitempty" validate:"omitempty,max=100,dive"`
	Active     *bool        `json:"active,omitempty"`
}

// TreatmentByID returns the embedded treatment with the given ID, or nil.
func (l *Location) TreatmentByID(id string) *Treatment {
	for i := range l.Treatments {
		if l.Treatments[i].ID == id {
			return &l.Treatments[i]
		}
	}
	return nil
}
