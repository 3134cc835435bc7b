// Package bookingtest provides an in-memory booking.Repository for tests.
package bookingtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
)

type Memory struct {
	mu           sync.Mutex
	barbers      []models.Barber
	appointments map[primitive.ObjectID]models.Appointment

	// AppendErr, when set, makes the barber append step of CreateAppointment
	// fail after the appointment was stored.
	AppendErr error

	// Calls counts repository calls by method name.
	Calls map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		appointments: make(map[primitive.ObjectID]models.Appointment),
		Calls:        make(map[string]int),
	}
}

func (m *Memory) count(name string) {
	m.Calls[name]++
}

// CallCount is safe to use while requests are in flight.
func (m *Memory) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[name]
}

// SeedBarber stores b as-is, assigning an id when missing.
func (m *Memory) SeedBarber(b models.Barber) models.Barber {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.AppointmentIDs == nil {
		b.AppointmentIDs = []primitive.ObjectID{}
	}
	m.barbers = append(m.barbers, b)
	return b
}

// SeedAppointment stores ap and links it to its barber.
func (m *Memory) SeedAppointment(ap models.Appointment) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ap.ID.IsZero() {
		ap.ID = primitive.NewObjectID()
	}
	ap.Time = timezone.Normalize(ap.Time)
	m.appointments[ap.ID] = ap
	if i := m.barberIndex(ap.BarberID); i >= 0 {
		m.barbers[i].AppointmentIDs = append(m.barbers[i].AppointmentIDs, ap.ID)
	}
	return ap
}

func (m *Memory) AppointmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

func (m *Memory) barberIndex(id primitive.ObjectID) int {
	for i, b := range m.barbers {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func cloneBarber(b models.Barber) *models.Barber {
	b.AppointmentIDs = append([]primitive.ObjectID{}, b.AppointmentIDs...)
	return &b
}

func sorted(apps []models.Appointment) []models.Appointment {
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].Time.Before(apps[j].Time) })
	return apps
}

func (m *Memory) ListAppointments(_ context.Context, filter booking.AppointmentFilter) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListAppointments")

	var barberID primitive.ObjectID
	if filter.BarberID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.BarberID)
		if err != nil {
			return nil, httperr.ErrInvalidInput("Barber ID is invalid")
		}
		barberID = oid
	}

	var start, end time.Time
	if filter.Date != "" {
		var err error
		start, end, err = timezone.DayBounds(filter.Date)
		if err != nil {
			return nil, httperr.ErrInvalidInput("%v", err)
		}
	}

	out := make([]models.Appointment, 0)
	for _, ap := range m.appointments {
		if filter.BarberID != "" && ap.BarberID != barberID {
			continue
		}
		if filter.Date != "" && !timezone.InRange(ap.Time, start, end) {
			continue
		}
		out = append(out, ap)
	}
	return sorted(out), nil
}

func (m *Memory) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetAppointment")

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperr.ErrNotFound("Appointment not found")
	}
	ap, ok := m.appointments[oid]
	if !ok {
		return nil, httperr.ErrNotFound("Appointment not found")
	}
	return &ap, nil
}

func (m *Memory) GetAppointmentsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetAppointmentsByIDs")

	out := make([]models.Appointment, 0, len(ids))
	for _, id := range ids {
		if ap, ok := m.appointments[id]; ok {
			out = append(out, ap)
		}
	}
	return sorted(out), nil
}

func (m *Memory) CreateAppointment(_ context.Context, in booking.NewAppointment) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("CreateAppointment")

	barberID, err := primitive.ObjectIDFromHex(in.BarberID)
	if err != nil {
		return nil, httperr.ErrInvalidReference("Barber ID is invalid")
	}
	idx := m.barberIndex(barberID)
	if idx < 0 {
		return nil, httperr.ErrInvalidReference("Barber ID is invalid")
	}

	ap := models.Appointment{
		ID:          primitive.NewObjectID(),
		Duration:    in.Duration,
		Email:       in.Email,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		ServiceName: string(in.ServiceName),
		Time:        timezone.Normalize(in.Time),
		BarberID:    barberID,
	}
	m.appointments[ap.ID] = ap

	if m.AppendErr != nil {
		return nil, fmt.Errorf("append appointment %s to barber %s: %w", ap.ID.Hex(), in.BarberID, m.AppendErr)
	}
	for _, existing := range m.barbers[idx].AppointmentIDs {
		if existing == ap.ID {
			return &ap, nil
		}
	}
	m.barbers[idx].AppointmentIDs = append(m.barbers[idx].AppointmentIDs, ap.ID)
	return &ap, nil
}

func (m *Memory) UpdateAppointment(_ context.Context, id string, patch booking.AppointmentPatch) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("UpdateAppointment")

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperr.ErrNotFound("Appointment not found")
	}
	ap, ok := m.appointments[oid]
	if !ok {
		return nil, httperr.ErrNotFound("Appointment not found")
	}

	if patch.Duration != nil {
		ap.Duration = *patch.Duration
	}
	if patch.Email != nil {
		ap.Email = *patch.Email
	}
	if patch.Name != nil {
		ap.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		ap.PhoneNumber = *patch.PhoneNumber
	}
	if patch.ServiceName != nil {
		ap.ServiceName = string(*patch.ServiceName)
	}
	if patch.Time != nil {
		ap.Time = timezone.Normalize(*patch.Time)
	}
	if patch.BarberID != nil {
		barberID, err := primitive.ObjectIDFromHex(*patch.BarberID)
		if err != nil {
			return nil, httperr.ErrInvalidInput("Barber ID is invalid")
		}
		ap.BarberID = barberID
	}

	m.appointments[oid] = ap
	return &ap, nil
}

func (m *Memory) ListBarbers(_ context.Context, onlyCompleted bool) ([]models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListBarbers")

	out := make([]models.Barber, 0, len(m.barbers))
	for _, b := range m.barbers {
		if onlyCompleted && !b.Completed {
			continue
		}
		out = append(out, *cloneBarber(b))
	}
	return out, nil
}

func (m *Memory) GetBarber(_ context.Context, lookup booking.BarberLookup) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetBarber")

	switch {
	case lookup.ID != "":
		oid, err := primitive.ObjectIDFromHex(lookup.ID)
		if err != nil {
			return nil, httperr.ErrNotFound("Barber not found")
		}
		if i := m.barberIndex(oid); i >= 0 {
			return cloneBarber(m.barbers[i]), nil
		}
	case strings.TrimSpace(lookup.Email) != "":
		email := strings.ToLower(strings.TrimSpace(lookup.Email))
		for _, b := range m.barbers {
			if b.Email == email {
				return cloneBarber(b), nil
			}
		}
	default:
		return nil, httperr.ErrInvalidInput("No input provided")
	}
	return nil, httperr.ErrNotFound("Barber not found")
}

func (m *Memory) CreateBarber(_ context.Context, in booking.NewBarber) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("CreateBarber")

	email := strings.ToLower(strings.TrimSpace(in.Email))
	for _, b := range m.barbers {
		if b.Email == email {
			return nil, httperr.ErrInvalidInput("email already exists")
		}
	}

	b := models.Barber{
		ID:              primitive.NewObjectID(),
		Email:           email,
		Name:            in.Name,
		ProfileImageURL: in.ProfileImageURL,
		Specialisation:  string(in.Specialisation),
		AppointmentIDs:  []primitive.ObjectID{},
	}
	m.barbers = append(m.barbers, b)
	return cloneBarber(b), nil
}

func (m *Memory) UpdateBarber(_ context.Context, id string, patch booking.BarberPatch) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("UpdateBarber")

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperr.ErrNotFound("Barber not found")
	}
	i := m.barberIndex(oid)
	if i < 0 {
		return nil, httperr.ErrNotFound("Barber not found")
	}

	b := m.barbers[i]
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		for j, other := range m.barbers {
			if j != i && other.Email == email {
				return nil, httperr.ErrInvalidInput("email already exists")
			}
		}
		b.Email = email
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.ProfileImageURL != nil {
		b.ProfileImageURL = *patch.ProfileImageURL
		b.Completed = true
	}
	if patch.Specialisation != nil {
		b.Specialisation = string(*patch.Specialisation)
	}

	m.barbers[i] = b
	return cloneBarber(b), nil
}

var _ booking.Repository = (*Memory)(nil)
