package barber

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

type ListBarbers struct {
	repo booking.Repository
}

func NewListBarbers(
	repo booking.Repository,
) *ListBarbers {
	return &ListBarbers{
		repo: repo,
	}
}

// Execute lists barbers with a completed profile. When at is set, barbers
// with an appointment starting exactly at that instant are left out.
func (uc *ListBarbers) Execute(
	ctx context.Context,
	at *time.Time,
) ([]models.Barber, error) {

	barbers, err := uc.repo.ListBarbers(ctx, true)
	if err != nil {
		return nil, err
	}
	if at == nil {
		return barbers, nil
	}

	schedules := make([]booking.BarberSchedule, 0, len(barbers))
	for _, b := range barbers {
		apps, err := uc.repo.GetAppointmentsByIDs(ctx, b.AppointmentIDs)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, booking.BarberSchedule{
			Barber:       b,
			Appointments: apps,
		})
	}

	return booking.FreeBarbers(schedules, *at), nil
}

type GetBarber struct {
	repo booking.Repository
}

func NewGetBarber(repo booking.Repository) *GetBarber {
	return &GetBarber{repo: repo}
}

// Execute finds a barber by id or, when id is empty, by email.
func (uc *GetBarber) Execute(ctx context.Context, barberID, email string) (*models.Barber, error) {
	return uc.repo.GetBarber(ctx, booking.BarberLookup{
		ID:    strings.TrimSpace(barberID),
		Email: email,
	})
}
