package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/authz"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/graph"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/handlers"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/metrics"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/barber"
)

// Dependencies are the process singletons built in main.
type Dependencies struct {
	Repo     booking.Repository
	Audit    *audit.Dispatcher
	Users    ucBarber.IdentityAdmin
	Callers  middleware.CallerResolver
	Signer   ucBarber.UploadSigner
	Identity ucBarber.IdentitySettings
	Registry *prometheus.Registry
	Health   map[string]handlers.Pinger
	Logger   logrus.FieldLogger
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) error {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	graphQLMetrics := metrics.NewGraphQLMetrics(deps.Registry)
	guard := authz.NewGuard(deps.Repo, graphQLMetrics, deps.Logger)

	// ======================================================
	// USE CASES
	// ======================================================
	useCases := graph.UseCases{
		ListAppointments:       ucAppointment.NewListAppointments(deps.Repo),
		GetAppointment:         ucAppointment.NewGetAppointment(deps.Repo),
		ListBarberAppointments: ucAppointment.NewListBarberAppointments(deps.Repo),
		CreateAppointment:      ucAppointment.NewCreateAppointment(deps.Repo, deps.Audit),
		UpdateAppointment:      ucAppointment.NewUpdateAppointment(deps.Repo, deps.Audit),

		ListBarbers: ucBarber.NewListBarbers(deps.Repo),
		GetBarber:   ucBarber.NewGetBarber(deps.Repo),
		CreateBarber: ucBarber.NewCreateBarber(
			deps.Repo,
			deps.Users,
			guard,
			deps.Audit,
			deps.Identity,
		),
		UpdateBarber: ucBarber.NewUpdateBarber(
			deps.Repo,
			deps.Users,
			guard,
			deps.Audit,
		),
		GetSignedURL: ucBarber.NewGetSignedURL(deps.Signer, guard, deps.Audit),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	schema, err := graph.NewSchema(graph.NewResolver(useCases, guard, graphQLMetrics, deps.Logger))
	if err != nil {
		return err
	}

	graphQLHandler := handlers.NewGraphQLHandler(schema, graphQLMetrics, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	r.POST("/graphql", middleware.CallerMiddleware(deps.Callers), graphQLHandler.Serve)

	return nil
}
