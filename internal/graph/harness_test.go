package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tailor-inc/graphql"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/authz"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/metrics"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barber-booking-graphql/internal/usecase/barber"
)

var noon = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeAdmin struct {
	patched []identity.UserPatch
	findErr error
}

func (f *fakeAdmin) CreateUser(_ context.Context, req identity.CreateUserRequest) (*identity.User, error) {
	return &identity.User{UserID: "auth0|" + req.Email, Picture: "https://gravatar.example.com/default.png"}, nil
}

func (f *fakeAdmin) AssignRole(context.Context, string, string) error { return nil }

func (f *fakeAdmin) FindUserByEmail(_ context.Context, email string) (*identity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &identity.User{UserID: "auth0|" + email, Email: email}, nil
}

func (f *fakeAdmin) PatchUser(_ context.Context, _ string, patch identity.UserPatch) error {
	f.patched = append(f.patched, patch)
	return nil
}

type fakeSigner struct{}

func (fakeSigner) SignedUploadURL(_ context.Context, barberID, ext string) (string, error) {
	return "https://uploads.example.com/barberProfileImages/" + barberID + "." + ext + "?X-Amz-Signature=x", nil
}

type harness struct {
	repo   *bookingtest.Memory
	admin  *fakeAdmin
	schema graphql.Schema
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	repo := bookingtest.NewMemory()
	admin := &fakeAdmin{}
	logger := logging.Discard()
	guard := authz.NewGuard(repo, metrics.Noop{}, logger)

	uc := UseCases{
		ListAppointments:       ucAppointment.NewListAppointments(repo),
		GetAppointment:         ucAppointment.NewGetAppointment(repo),
		ListBarberAppointments: ucAppointment.NewListBarberAppointments(repo),
		CreateAppointment:      ucAppointment.NewCreateAppointment(repo, nil),
		UpdateAppointment:      ucAppointment.NewUpdateAppointment(repo, nil),
		ListBarbers:            ucBarber.NewListBarbers(repo),
		GetBarber:              ucBarber.NewGetBarber(repo),
		CreateBarber: ucBarber.NewCreateBarber(repo, admin, guard, nil, ucBarber.IdentitySettings{
			Connection:   "Username-Password-Authentication",
			BarberRoleID: "rol_barber",
		}),
		UpdateBarber: ucBarber.NewUpdateBarber(repo, admin, guard, nil),
		GetSignedURL: ucBarber.NewGetSignedURL(fakeSigner{}, guard, nil),
	}

	schema, err := NewSchema(NewResolver(uc, guard, metrics.Noop{}, logger))
	require.NoError(t, err)

	return &harness{repo: repo, admin: admin, schema: schema}
}

func (h *harness) do(caller identity.Caller, query string, vars map[string]interface{}) *graphql.Result {
	ctx := identity.WithCaller(context.Background(), caller)
	ctx = authz.WithOwnerMemo(ctx)

	return graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func (h *harness) seedBarber(email string) models.Barber {
	return h.repo.SeedBarber(models.Barber{
		Email:           email,
		Name:            models.Name{First: "Ann", Last: "Lee"},
		ProfileImageURL: "https://cdn.example.com/" + email + ".png",
		Specialisation:  string(booking.SpecialisationBeards),
		Completed:       true,
	})
}

func (h *harness) seedAppointment(barber models.Barber, at time.Time) models.Appointment {
	return h.repo.SeedAppointment(models.Appointment{
		Duration:    30,
		Email:       "client@example.com",
		Name:        models.Name{First: "Jack", Last: "Black"},
		PhoneNumber: "+371 2000 0000",
		ServiceName: string(booking.ServiceHaircut),
		Time:        at,
		BarberID:    barber.ID,
	})
}

func barberOf(email string, scopes ...string) identity.Caller {
	return identity.Caller{Subject: "auth0|" + email, Email: email, Permissions: scopes}
}

func admin(scopes ...string) identity.Caller {
	return identity.Caller{Subject: "admin@clients", Permissions: scopes, Machine: true}
}

func data(t *testing.T, res *graphql.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, res.Errors)
	m, ok := res.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", res.Data)
	return m
}

func list(t *testing.T, v interface{}) []interface{} {
	t.Helper()
	l, ok := v.([]interface{})
	require.True(t, ok, "value is %T", v)
	return l
}

func object(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok, "value is %T", v)
	return m
}

func errorMessages(res *graphql.Result) []string {
	out := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		out = append(out, e.Message)
	}
	return out
}
