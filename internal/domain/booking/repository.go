package booking

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

// Repository is the persistence gateway over the barbers and appointments
// collections. Failures use the httperr taxonomy: InvalidInput, NotFound and
// InvalidReference.
type Repository interface {
	// -------- Appointments --------
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetAppointmentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Appointment, error)

	// CreateAppointment checks the barber exists, inserts the appointment and
	// adds its id to the barber's appointment set.
	CreateAppointment(ctx context.Context, in NewAppointment) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (*models.Appointment, error)

	// -------- Barbers --------
	ListBarbers(ctx context.Context, onlyCompleted bool) ([]models.Barber, error)
	GetBarber(ctx context.Context, lookup BarberLookup) (*models.Barber, error)
	CreateBarber(ctx context.Context, in NewBarber) (*models.Barber, error)

	// UpdateBarber marks the profile completed once a profile image is set.
	UpdateBarber(ctx context.Context, id string, patch BarberPatch) (*models.Barber, error)
}
