package dto

import (
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
)

// AppointmentDTO is the wire shape of an appointment. Every field is listed;
// storage fields not named here never reach a response.
type AppointmentDTO struct {
	ID          string `json:"id"`
	Duration    int    `json:"duration"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	ServiceName string `json:"serviceName"`
	Time        string `json:"time"`
	BarberID    string `json:"barberID"`
}

type BarberDTO struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	FullName        string   `json:"fullName"`
	ProfileImageURL string   `json:"profileImageURL"`
	Specialisation  string   `json:"specialisation"`
	AppointmentIDs  []string `json:"appointmentIDS"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          ap.ID.Hex(),
		Duration:    ap.Duration,
		Email:       ap.Email,
		FullName:    ap.Name.Full(),
		PhoneNumber: ap.PhoneNumber,
		ServiceName: ap.ServiceName,
		Time:        timezone.Format(ap.Time),
		BarberID:    ap.BarberID.Hex(),
	}
}

func FromAppointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}

func FromBarber(b models.Barber) BarberDTO {
	ids := make([]string, 0, len(b.AppointmentIDs))
	for _, id := range b.AppointmentIDs {
		ids = append(ids, id.Hex())
	}

	return BarberDTO{
		ID:              b.ID.Hex(),
		Email:           b.Email,
		FullName:        b.Name.Full(),
		ProfileImageURL: b.ProfileImageURL,
		Specialisation:  b.Specialisation,
		AppointmentIDs:  ids,
	}
}

func FromBarbers(barbers []models.Barber) []BarberDTO {
	out := make([]BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, FromBarber(b))
	}
	return out
}
