package booking

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/timezone"
)

// BarberSchedule is a barber together with its resolved appointments.
type BarberSchedule struct {
	Barber       models.Barber
	Appointments []models.Appointment
}

// FreeBarbers keeps the barbers that have no appointment starting exactly at
// t. Durations are not consulted; only identical start instants conflict.
func FreeBarbers(schedules []BarberSchedule, t time.Time) []models.Barber {
	at := timezone.Normalize(t)

	free := make([]models.Barber, 0, len(schedules))
	for _, s := range schedules {
		busy := false
		for _, ap := range s.Appointments {
			if timezone.Normalize(ap.Time).Equal(at) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, s.Barber)
		}
	}
	return free
}

// SortByTime orders appointments by ascending time, stable for equal times.
func SortByTime(apps []models.Appointment) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Time.Before(apps[j].Time)
	})
}

// OnDay returns the appointments in [start, end), sorted ascending.
func OnDay(apps []models.Appointment, start, end time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(apps))
	for _, ap := range apps {
		if timezone.InRange(ap.Time, start, end) {
			out = append(out, ap)
		}
	}
	SortByTime(out)
	return out
}
