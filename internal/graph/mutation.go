package graph

import (
	"github.com/tailor-inc/graphql"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/dto"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/barber"
)

func (r *Resolver) mutationType(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAppointment": &graphql.Field{
				Type: graphql.NewNonNull(t.appointment),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.createAppointment)},
				},
				Resolve: r.wrap(r.createAppointment),
			},
			"createBarber": &graphql.Field{
				Type: graphql.NewNonNull(t.barber),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.createBarber)},
				},
				Resolve: r.wrap(r.createBarber),
			},
			"updateAppointment": &graphql.Field{
				Type: graphql.NewNonNull(t.appointment),
				Args: graphql.FieldConfigArgument{
					"appointmentID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateAppointment)},
				},
				Resolve: r.wrap(r.updateAppointment),
			},
			"updateBarber": &graphql.Field{
				Type: graphql.NewNonNull(t.barber),
				Args: graphql.FieldConfigArgument{
					"barberID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateBarber)},
				},
				Resolve: r.wrap(r.updateBarber),
			},
		},
	})
}

func (r *Resolver) createAppointment(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)

	at, err := instantArg(in, "time")
	if err != nil {
		return nil, err
	}
	if at == nil {
		return nil, httperr.ErrInvalidInput("time is required")
	}

	name := nameArg(in)
	if name == nil {
		name = &models.Name{}
	}

	ap, err := r.uc.CreateAppointment.Execute(p.Context, ucAppointment.CreateAppointmentInput{
		Duration:    derefInt(optInt(in, "duration")),
		Email:       stringArg(in, "email"),
		Name:        *name,
		PhoneNumber: stringArg(in, "phoneNumber"),
		ServiceName: stringArg(in, "serviceName"),
		Time:        *at,
		BarberID:    stringArg(in, "barberID"),
	})
	if err != nil {
		return nil, err
	}
	return dto.FromAppointment(*ap), nil
}

func (r *Resolver) updateAppointment(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)

	at, err := instantArg(in, "time")
	if err != nil {
		return nil, err
	}

	ap, err := r.uc.UpdateAppointment.Execute(p.Context, stringArg(p.Args, "appointmentID"), ucAppointment.UpdateAppointmentInput{
		Duration:    optInt(in, "duration"),
		Email:       optString(in, "email"),
		Name:        nameArg(in),
		PhoneNumber: optString(in, "phoneNumber"),
		ServiceName: optString(in, "serviceName"),
		Time:        at,
		BarberID:    optString(in, "barberID"),
	})
	if err != nil {
		return nil, err
	}
	return dto.FromAppointment(*ap), nil
}

func (r *Resolver) createBarber(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)

	name := nameArg(in)
	if name == nil {
		name = &models.Name{}
	}

	b, err := r.uc.CreateBarber.Execute(p.Context, ucBarber.CreateBarberInput{
		Email:          stringArg(in, "email"),
		Name:           *name,
		Specialisation: stringArg(in, "specialisation"),
		Password:       stringArg(in, "password"),
	})
	if err != nil {
		return nil, err
	}
	return dto.FromBarber(*b), nil
}

func (r *Resolver) updateBarber(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)

	b, err := r.uc.UpdateBarber.Execute(p.Context, stringArg(p.Args, "barberID"), ucBarber.UpdateBarberInput{
		Email:           optString(in, "email"),
		Name:            nameArg(in),
		ProfileImageURL: optString(in, "profileImageURL"),
		Specialisation:  optString(in, "specialisation"),
	})
	if err != nil {
		return nil, err
	}
	return dto.FromBarber(*b), nil
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
