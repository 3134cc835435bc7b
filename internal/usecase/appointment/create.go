package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Duration    int
	Email       string
	Name        models.Name
	PhoneNumber string
	ServiceName string
	Time        time.Time
	BarberID    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  booking.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo booking.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validation
	// --------------------------------------------------
	newAp := booking.NewAppointment{
		Duration:    in.Duration,
		Email:       validators.NormalizeEmail(in.Email),
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		ServiceName: booking.Service(in.ServiceName),
		Time:        timezone.Normalize(in.Time),
		BarberID:    in.BarberID,
	}
	if err := validators.Struct(newAp); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persist (barber existence is checked by the gateway)
	// --------------------------------------------------
	ap, err := uc.repo.CreateAppointment(ctx, newAp)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.NewEvent(
		ctx,
		"appointment_created",
		"appointment",
		ap.ID.Hex(),
		map[string]string{"barberID": ap.BarberID.Hex()},
	))

	return ap, nil
}
