package bookingtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

func newAppointment(barberID string, at time.Time) booking.NewAppointment {
	return booking.NewAppointment{
		Duration:    30,
		Email:       "client@example.com",
		Name:        models.Name{First: "Jack", Last: "Black"},
		PhoneNumber: "123",
		ServiceName: booking.ServiceHaircut,
		Time:        at,
		BarberID:    barberID,
	}
}

func TestListAppointmentsByDateIsHalfOpen(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	b := m.SeedBarber(models.Barber{Email: "b@example.com"})

	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	m.SeedAppointment(models.Appointment{BarberID: b.ID, Time: day.Add(-time.Millisecond)})
	inside := m.SeedAppointment(models.Appointment{BarberID: b.ID, Time: day})
	last := m.SeedAppointment(models.Appointment{BarberID: b.ID, Time: day.Add(24*time.Hour - time.Millisecond)})
	m.SeedAppointment(models.Appointment{BarberID: b.ID, Time: day.Add(24 * time.Hour)})

	got, err := m.ListAppointments(ctx, booking.AppointmentFilter{Date: "2021-06-01"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, inside.ID, got[0].ID)
	assert.Equal(t, last.ID, got[1].ID)
}

func TestListAppointmentsEmptyIsNotNil(t *testing.T) {
	got, err := NewMemory().ListAppointments(context.Background(), booking.AppointmentFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateAppointmentRejectsUnknownBarber(t *testing.T) {
	m := NewMemory()

	_, err := m.CreateAppointment(context.Background(), newAppointment(primitive.NewObjectID().Hex(), time.Now()))

	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidReference))
	assert.Equal(t, 0, m.AppointmentCount())
}

func TestCreateAppointmentLinksBarberOnce(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	b := m.SeedBarber(models.Barber{Email: "b@example.com"})

	ap, err := m.CreateAppointment(ctx, newAppointment(b.ID.Hex(), time.Now()))
	require.NoError(t, err)

	got, err := m.GetBarber(ctx, booking.BarberLookup{ID: b.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{ap.ID}, got.AppointmentIDs)
}

func TestCreateAppointmentSurfacesAppendFailure(t *testing.T) {
	m := NewMemory()
	b := m.SeedBarber(models.Barber{Email: "b@example.com"})
	m.AppendErr = errors.New("write conflict")

	_, err := m.CreateAppointment(context.Background(), newAppointment(b.ID.Hex(), time.Now()))

	assert.ErrorContains(t, err, "write conflict")
}

func TestGetBarberRequiresLookup(t *testing.T) {
	_, err := NewMemory().GetBarber(context.Background(), booking.BarberLookup{})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestUpdateBarberCompletesProfileOnImage(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	b := m.SeedBarber(models.Barber{Email: "b@example.com"})

	url := "https://cdn.example.com/b.png"
	got, err := m.UpdateBarber(ctx, b.ID.Hex(), booking.BarberPatch{ProfileImageURL: &url})
	require.NoError(t, err)
	assert.True(t, got.Completed)

	listed, err := m.ListBarbers(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
