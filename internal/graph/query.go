package graph

import (
	"github.com/tailor-inc/graphql"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/dto"
)

func (r *Resolver) queryType(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"appointments": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(t.appointment)),
				Args: graphql.FieldConfigArgument{
					"date":     &graphql.ArgumentConfig{Type: graphql.String},
					"barberID": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.wrap(r.appointments),
			},
			"appointment": &graphql.Field{
				Type: graphql.NewNonNull(t.appointment),
				Args: graphql.FieldConfigArgument{
					"appointmentID": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.wrap(r.appointment),
			},
			"barbers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(t.barber)),
				Args: graphql.FieldConfigArgument{
					"dateTime": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.wrap(r.barbers),
			},
			"barber": &graphql.Field{
				Type: graphql.NewNonNull(t.barber),
				Args: graphql.FieldConfigArgument{
					"barberID": &graphql.ArgumentConfig{Type: graphql.ID},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.wrap(r.barber),
			},
			"getSignedURL": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"barberID":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"fileExtension": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.wrap(r.signedURL),
			},
		},
	})
}

func (r *Resolver) appointments(p graphql.ResolveParams) (interface{}, error) {
	apps, err := r.uc.ListAppointments.Execute(
		p.Context,
		stringArg(p.Args, "barberID"),
		stringArg(p.Args, "date"),
	)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(apps), nil
}

func (r *Resolver) appointment(p graphql.ResolveParams) (interface{}, error) {
	ap, err := r.uc.GetAppointment.Execute(p.Context, stringArg(p.Args, "appointmentID"))
	if err != nil {
		return nil, err
	}
	return dto.FromAppointment(*ap), nil
}

func (r *Resolver) barbers(p graphql.ResolveParams) (interface{}, error) {
	at, err := instantArg(p.Args, "dateTime")
	if err != nil {
		return nil, err
	}

	barbers, err := r.uc.ListBarbers.Execute(p.Context, at)
	if err != nil {
		return nil, err
	}
	return dto.FromBarbers(barbers), nil
}

func (r *Resolver) barber(p graphql.ResolveParams) (interface{}, error) {
	b, err := r.uc.GetBarber.Execute(
		p.Context,
		stringArg(p.Args, "barberID"),
		stringArg(p.Args, "email"),
	)
	if err != nil {
		return nil, err
	}
	return dto.FromBarber(*b), nil
}

func (r *Resolver) signedURL(p graphql.ResolveParams) (interface{}, error) {
	return r.uc.GetSignedURL.Execute(
		p.Context,
		stringArg(p.Args, "barberID"),
		stringArg(p.Args, "fileExtension"),
	)
}
