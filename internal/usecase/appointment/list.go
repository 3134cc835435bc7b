package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

type ListAppointments struct {
	repo booking.Repository
}

func NewListAppointments(
	repo booking.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute lists appointments, optionally for one barber and/or one UTC
// calendar day, ordered by time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	barberID string,
	date string,
) ([]models.Appointment, error) {

	return uc.repo.ListAppointments(ctx, booking.AppointmentFilter{
		BarberID: strings.TrimSpace(barberID),
		Date:     strings.TrimSpace(date),
	})
}

type GetAppointment struct {
	repo booking.Repository
}

func NewGetAppointment(repo booking.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, appointmentID)
}
