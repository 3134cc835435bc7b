package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
)

// ListBarberAppointments resolves the appointment ids held by a barber
// record, optionally narrowed to one UTC day.
type ListBarberAppointments struct {
	repo booking.Repository
}

func NewListBarberAppointments(
	repo booking.Repository,
) *ListBarberAppointments {
	return &ListBarberAppointments{
		repo: repo,
	}
}

func (uc *ListBarberAppointments) Execute(
	ctx context.Context,
	barber models.Barber,
	date string,
) ([]models.Appointment, error) {

	var (
		start, end time.Time
		err        error
	)
	if date != "" {
		start, end, err = timezone.DayBounds(date)
		if err != nil {
			return nil, httperr.ErrInvalidInput("%v", err)
		}
	}

	if len(barber.AppointmentIDs) == 0 {
		return []models.Appointment{}, nil
	}

	apps, err := uc.repo.GetAppointmentsByIDs(ctx, barber.AppointmentIDs)
	if err != nil {
		return nil, err
	}

	if date == "" {
		booking.SortByTime(apps)
		return apps, nil
	}
	return booking.OnDay(apps, start, end), nil
}
