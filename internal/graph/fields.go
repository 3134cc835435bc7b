package graph

import (
	"fmt"

	"github.com/tailor-inc/graphql"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/dto"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

// -------- Appointment --------

func appointmentSource(p graphql.ResolveParams) (dto.AppointmentDTO, error) {
	ap, ok := p.Source.(dto.AppointmentDTO)
	if !ok {
		return dto.AppointmentDTO{}, fmt.Errorf("unexpected appointment source %T", p.Source)
	}
	return ap, nil
}

// protectedAppointmentField releases a personal field of an appointment only
// to the barber the appointment is assigned to.
func (r *Resolver) protectedAppointmentField(
	p graphql.ResolveParams,
	value func(dto.AppointmentDTO) string,
) (interface{}, error) {
	ap, err := appointmentSource(p)
	if err != nil {
		return nil, err
	}
	if err := r.guard.AuthorizeBarber(p.Context, ap.BarberID, booking.ScopeReadAppointmentsData); err != nil {
		return nil, err
	}
	return value(ap), nil
}

func (r *Resolver) appointmentEmail(p graphql.ResolveParams) (interface{}, error) {
	return r.protectedAppointmentField(p, func(ap dto.AppointmentDTO) string { return ap.Email })
}

func (r *Resolver) appointmentFullName(p graphql.ResolveParams) (interface{}, error) {
	return r.protectedAppointmentField(p, func(ap dto.AppointmentDTO) string { return ap.FullName })
}

func (r *Resolver) appointmentPhoneNumber(p graphql.ResolveParams) (interface{}, error) {
	return r.protectedAppointmentField(p, func(ap dto.AppointmentDTO) string { return ap.PhoneNumber })
}

func (r *Resolver) appointmentBarber(p graphql.ResolveParams) (interface{}, error) {
	ap, err := appointmentSource(p)
	if err != nil {
		return nil, err
	}
	b, err := r.uc.GetBarber.Execute(p.Context, ap.BarberID, "")
	if err != nil {
		return nil, err
	}
	return dto.FromBarber(*b), nil
}

// -------- Barber --------

func barberSource(p graphql.ResolveParams) (dto.BarberDTO, error) {
	b, ok := p.Source.(dto.BarberDTO)
	if !ok {
		return dto.BarberDTO{}, fmt.Errorf("unexpected barber source %T", p.Source)
	}
	return b, nil
}

func (r *Resolver) barberEmail(p graphql.ResolveParams) (interface{}, error) {
	b, err := barberSource(p)
	if err != nil {
		return nil, err
	}
	caller := identity.FromContext(p.Context)
	if err := r.guard.Authorize(caller, b.Email, booking.ScopeReadBarberData); err != nil {
		return nil, err
	}
	return b.Email, nil
}

func (r *Resolver) barberAppointmentList(p graphql.ResolveParams) (interface{}, error) {
	b, err := barberSource(p)
	if err != nil {
		return nil, err
	}

	apps, err := r.uc.ListBarberAppointments.Execute(
		p.Context,
		models.Barber{AppointmentIDs: objectIDs(b.AppointmentIDs)},
		stringArg(p.Args, "date"),
	)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(apps), nil
}
