package graph

import (
	"github.com/tailor-inc/graphql"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
)

type schemaTypes struct {
	specialisation *graphql.Enum
	service        *graphql.Enum

	name              *graphql.InputObject
	createAppointment *graphql.InputObject
	updateAppointment *graphql.InputObject
	createBarber      *graphql.InputObject
	updateBarber      *graphql.InputObject

	barber      *graphql.Object
	appointment *graphql.Object
}

func (r *Resolver) buildTypes() *schemaTypes {
	t := &schemaTypes{}

	// -------- Enums --------
	specialisations := graphql.EnumValueConfigMap{}
	for _, s := range booking.Specialisations {
		specialisations[string(s)] = &graphql.EnumValueConfig{Value: string(s)}
	}
	t.specialisation = graphql.NewEnum(graphql.EnumConfig{
		Name:   "Specialisation",
		Values: specialisations,
	})

	services := graphql.EnumValueConfigMap{}
	for _, s := range booking.Services {
		services[string(s)] = &graphql.EnumValueConfig{Value: string(s)}
	}
	t.service = graphql.NewEnum(graphql.EnumConfig{
		Name:   "Service",
		Values: services,
	})

	// -------- Inputs --------
	t.name = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "Name",
		Fields: graphql.InputObjectConfigFieldMap{
			"first": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"last":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.createAppointment = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateAppointmentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"duration":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"email":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.name)},
			"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"serviceName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.service)},
			"time":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"barberID":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	t.updateAppointment = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateAppointmentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"duration":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"email":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"name":        &graphql.InputObjectFieldConfig{Type: t.name},
			"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"serviceName": &graphql.InputObjectFieldConfig{Type: t.service},
			"time":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"barberID":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	t.createBarber = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateBarberInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.name)},
			"specialisation": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.specialisation)},
			"password":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.updateBarber = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateBarberInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":           &graphql.InputObjectFieldConfig{Type: graphql.String},
			"name":            &graphql.InputObjectFieldConfig{Type: t.name},
			"profileImageURL": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"specialisation":  &graphql.InputObjectFieldConfig{Type: t.specialisation},
		},
	})

	// -------- Objects --------
	// Barber and Appointment reference each other, so their fields are thunks.
	t.barber = graphql.NewObject(graphql.ObjectConfig{
		Name: "Barber",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"email":           &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: r.wrap(r.barberEmail)},
				"fullName":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"profileImageURL": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"specialisation":  &graphql.Field{Type: graphql.NewNonNull(t.specialisation)},
				"appointments": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(t.appointment)),
					Args: graphql.FieldConfigArgument{
						"date": &graphql.ArgumentConfig{Type: graphql.String},
					},
					Resolve: r.wrap(r.barberAppointmentList),
				},
			}
		}),
	})

	t.appointment = graphql.NewObject(graphql.ObjectConfig{
		Name: "Appointment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"duration":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: r.wrap(r.appointmentEmail)},
				"fullName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: r.wrap(r.appointmentFullName)},
				"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: r.wrap(r.appointmentPhoneNumber)},
				"serviceName": &graphql.Field{Type: graphql.NewNonNull(t.service)},
				"time":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"barber": &graphql.Field{
					Type:    graphql.NewNonNull(t.barber),
					Resolve: r.wrap(r.appointmentBarber),
				},
			}
		}),
	})

	return t
}
