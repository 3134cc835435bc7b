// Package graph exposes the booking operations as a GraphQL schema.
package graph

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/tailor-inc/graphql"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/authz"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/metrics"
	ucAppointment "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/barber"
)

var errInternal = errors.New("internal server error")

// UseCases groups the operations the resolvers delegate to.
type UseCases struct {
	ListAppointments       *ucAppointment.ListAppointments
	GetAppointment         *ucAppointment.GetAppointment
	ListBarberAppointments *ucAppointment.ListBarberAppointments
	CreateAppointment      *ucAppointment.CreateAppointment
	UpdateAppointment      *ucAppointment.UpdateAppointment

	ListBarbers  *ucBarber.ListBarbers
	GetBarber    *ucBarber.GetBarber
	CreateBarber *ucBarber.CreateBarber
	UpdateBarber *ucBarber.UpdateBarber
	GetSignedURL *ucBarber.GetSignedURL
}

type Resolver struct {
	uc      UseCases
	guard   *authz.Guard
	metrics metrics.GraphQLMetrics
	logger  logrus.FieldLogger
}

func NewResolver(
	uc UseCases,
	guard *authz.Guard,
	m metrics.GraphQLMetrics,
	logger logrus.FieldLogger,
) *Resolver {
	return &Resolver{
		uc:      uc,
		guard:   guard,
		metrics: m,
		logger:  logger,
	}
}

func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := r.buildTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(t),
		Mutation: r.mutationType(t),
	})
}

// wrap records resolver failures. Errors outside the business taxonomy are
// logged and replaced so storage details never reach the client.
func (r *Resolver) wrap(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, err := fn(p)
		if err == nil {
			return v, nil
		}

		field := p.Info.ParentType.Name() + "." + p.Info.FieldName
		code := httperr.Code(err)
		r.metrics.IncResolverError(field, code)

		switch code {
		case "":
			logging.FromContext(p.Context, r.logger).
				WithError(err).
				WithField("field", field).
				Error("resolver failed")
			return nil, errInternal
		case httperr.CodeUpstreamFailure:
			logging.FromContext(p.Context, r.logger).
				WithError(err).
				WithField("field", field).
				Warn("upstream call failed")
			return nil, httperr.Redacted(err)
		}
		return nil, err
	}
}
