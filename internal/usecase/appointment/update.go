package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/validators"
)

// UpdateAppointmentInput holds the fields to change; nil means untouched.
type UpdateAppointmentInput struct {
	Duration    *int
	Email       *string
	Name        *models.Name
	PhoneNumber *string
	ServiceName *string
	Time        *time.Time
	BarberID    *string
}

type UpdateAppointment struct {
	repo  booking.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo booking.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies the provided fields. A new barberID is stored as given;
// whether that barber exists is not checked.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	patch := booking.AppointmentPatch{
		Duration:    in.Duration,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		BarberID:    in.BarberID,
	}
	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		patch.Email = &email
	}
	if in.ServiceName != nil {
		service := booking.Service(*in.ServiceName)
		patch.ServiceName = &service
	}
	if in.Time != nil {
		t := timezone.Normalize(*in.Time)
		patch.Time = &t
	}

	if patch.Empty() {
		return nil, httperr.ErrInvalidInput("No input provided")
	}
	if err := validators.Struct(patch); err != nil {
		return nil, err
	}

	ap, err := uc.repo.UpdateAppointment(ctx, appointmentID, patch)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.NewEvent(ctx, "appointment_updated", "appointment", ap.ID.Hex(), nil))

	return ap, nil
}
