package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

// AppointmentFilter narrows ListAppointments. Empty fields are not applied.
type AppointmentFilter struct {
	BarberID string
	Date     string
}

// BarberLookup selects one barber by id or, when ID is empty, by email.
type BarberLookup struct {
	ID    string
	Email string
}

type NewAppointment struct {
	Duration    int    `validate:"gt=0"`
	Email       string `validate:"required,email"`
	Name        models.Name
	PhoneNumber string    `validate:"required"`
	ServiceName Service   `validate:"required,oneof=HAIRCUT SHAVING COMBO FATHERSON JUNIOR"`
	Time        time.Time `validate:"required"`
	BarberID    string    `validate:"required"`
}

// AppointmentPatch carries only the fields a caller asked to change.
type AppointmentPatch struct {
	Duration    *int    `validate:"omitnil,gt=0"`
	Email       *string `validate:"omitnil,email"`
	Name        *models.Name
	PhoneNumber *string  `validate:"omitnil,min=1"`
	ServiceName *Service `validate:"omitnil,oneof=HAIRCUT SHAVING COMBO FATHERSON JUNIOR"`
	Time        *time.Time
	BarberID    *string `validate:"omitnil,min=1"`
}

func (p AppointmentPatch) Empty() bool {
	return p.Duration == nil && p.Email == nil && p.Name == nil && p.PhoneNumber == nil &&
		p.ServiceName == nil && p.Time == nil && p.BarberID == nil
}

type NewBarber struct {
	Email           string `validate:"required,email"`
	Name            models.Name
	ProfileImageURL string
	Specialisation  Specialisation `validate:"required,oneof=BEARDS HAIRCUTS"`
}

type BarberPatch struct {
	Email           *string `validate:"omitnil,email"`
	Name            *models.Name
	ProfileImageURL *string         `validate:"omitnil,url"`
	Specialisation  *Specialisation `validate:"omitnil,oneof=BEARDS HAIRCUTS"`
}

func (p BarberPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.ProfileImageURL == nil && p.Specialisation == nil
}
