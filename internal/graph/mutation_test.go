package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
)

const createAppointment = `mutation($input: CreateAppointmentInput!) {
	createAppointment(input: $input) { id time serviceName barber { id } }
}`

func appointmentInput(barberID string) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"duration":    45,
			"email":       "Client@Example.com",
			"name":        map[string]interface{}{"first": "Jack", "last": "Black"},
			"phoneNumber": "+371 2000 0000",
			"serviceName": "COMBO",
			"time":        "2021-06-01T15:30:00+03:00",
			"barberID":    barberID,
		},
	}
}

func TestCreateAppointmentAppendsToBarberOnce(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")

	res := h.do(identity.Anonymous(), createAppointment, appointmentInput(b.ID.Hex()))

	got := object(t, data(t, res)["createAppointment"])
	assert.Equal(t, "2021-06-01T12:30:00.000Z", got["time"])
	assert.Equal(t, "COMBO", got["serviceName"])
	assert.Equal(t, b.ID.Hex(), object(t, got["barber"])["id"])

	res = h.do(identity.Anonymous(), `query($id: ID) { barber(barberID: $id) { appointments { id } } }`,
		map[string]interface{}{"id": b.ID.Hex()})
	apps := list(t, object(t, data(t, res)["barber"])["appointments"])
	require.Len(t, apps, 1)
	assert.Equal(t, got["id"], object(t, apps[0])["id"])
}

func TestCreateAppointmentStoresNormalizedEmail(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")

	res := h.do(identity.Anonymous(), createAppointment, appointmentInput(b.ID.Hex()))
	id := object(t, data(t, res)["createAppointment"])["id"]

	res = h.do(barberOf("ann@example.com", booking.ScopeReadAppointmentsData),
		`query($id: ID!) { appointment(appointmentID: $id) { email } }`, map[string]interface{}{"id": id})
	assert.Equal(t, "client@example.com", object(t, data(t, res)["appointment"])["email"])
}

func TestCreateAppointmentUnknownBarberWritesNothing(t *testing.T) {
	h := newHarness(t)

	for _, barberID := range []string{"not-an-id", "60b8d295f1a2c3e4d5f60718"} {
		res := h.do(identity.Anonymous(), createAppointment, appointmentInput(barberID))

		assert.Equal(t, []string{"Barber ID is invalid"}, errorMessages(res))
	}
	assert.Equal(t, 0, h.repo.AppointmentCount())
}

func TestCreateAppointmentRejectsBadTime(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")
	vars := appointmentInput(b.ID.Hex())
	vars["input"].(map[string]interface{})["time"] = "next tuesday"

	res := h.do(identity.Anonymous(), createAppointment, vars)

	assert.Equal(t, []string{"time must be an ISO-8601 timestamp"}, errorMessages(res))
	assert.Equal(t, 0, h.repo.AppointmentCount())
}

func TestUpdateAppointment(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")
	ap := h.seedAppointment(b, noon)

	res := h.do(identity.Anonymous(), `mutation($id: ID!) {
		updateAppointment(appointmentID: $id, input: {duration: 60, serviceName: SHAVING}) { id duration serviceName time }
	}`, map[string]interface{}{"id": ap.ID.Hex()})

	got := object(t, data(t, res)["updateAppointment"])
	assert.EqualValues(t, 60, got["duration"])
	assert.Equal(t, "SHAVING", got["serviceName"])
	assert.Equal(t, "2021-06-01T12:00:00.000Z", got["time"])
}

func TestUpdateAppointmentErrors(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")
	ap := h.seedAppointment(b, noon)

	res := h.do(identity.Anonymous(), `mutation($id: ID!) { updateAppointment(appointmentID: $id, input: {}) { id } }`,
		map[string]interface{}{"id": ap.ID.Hex()})
	assert.Equal(t, []string{"No input provided"}, errorMessages(res))

	res = h.do(identity.Anonymous(), `mutation { updateAppointment(appointmentID: "60b8d295f1a2c3e4d5f60718", input: {duration: 10}) { id } }`, nil)
	assert.Equal(t, []string{"Appointment not found"}, errorMessages(res))
}

const createBarber = `mutation($input: CreateBarberInput!) {
	createBarber(input: $input) { id fullName profileImageURL specialisation }
}`

func barberInput(email string) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"email":          email,
			"name":           map[string]interface{}{"first": "Bob", "last": "Stone"},
			"specialisation": "HAIRCUTS",
			"password":       "s3cret-Passw0rd",
		},
	}
}

func TestCreateBarber(t *testing.T) {
	h := newHarness(t)

	res := h.do(admin(booking.ScopeCreateBarber), createBarber, barberInput("bob@example.com"))

	got := object(t, data(t, res)["createBarber"])
	assert.Equal(t, "Bob Stone", got["fullName"])
	assert.Equal(t, "HAIRCUTS", got["specialisation"])
	assert.Equal(t, "https://gravatar.example.com/default.png", got["profileImageURL"])
}

func TestCreateBarberScopeAndDuplicates(t *testing.T) {
	h := newHarness(t)
	h.seedBarber("ann@example.com")

	res := h.do(admin(booking.ScopeUpdateBarber), createBarber, barberInput("bob@example.com"))
	assert.Equal(t, []string{"Unauthorized"}, errorMessages(res))

	res = h.do(identity.Anonymous(), createBarber, barberInput("bob@example.com"))
	assert.Equal(t, []string{"Unauthorized"}, errorMessages(res))

	res = h.do(admin(booking.ScopeCreateBarber), createBarber, barberInput("ann@example.com"))
	assert.Equal(t, []string{"email already exists"}, errorMessages(res))

	assert.Equal(t, 0, h.repo.CallCount("CreateBarber"))
}

func TestUpdateBarberMirrorsNameToIdentityProvider(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")

	res := h.do(admin(booking.ScopeUpdateBarber), `mutation($id: ID!) {
		updateBarber(barberID: $id, input: {name: {first: "Anna", last: "Lee"}}) { fullName }
	}`, map[string]interface{}{"id": b.ID.Hex()})

	assert.Equal(t, "Anna Lee", object(t, data(t, res)["updateBarber"])["fullName"])
	require.Len(t, h.admin.patched, 1)
	require.NotNil(t, h.admin.patched[0].Name)
	assert.Equal(t, "Anna Lee", *h.admin.patched[0].Name)
	assert.Nil(t, h.admin.patched[0].Picture)
}

func TestUpdateBarberSpecialisationOnlySkipsIdentityProvider(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")

	res := h.do(admin(booking.ScopeUpdateBarber), `mutation($id: ID!) {
		updateBarber(barberID: $id, input: {specialisation: HAIRCUTS}) { specialisation }
	}`, map[string]interface{}{"id": b.ID.Hex()})

	assert.Equal(t, "HAIRCUTS", object(t, data(t, res)["updateBarber"])["specialisation"])
	assert.Empty(t, h.admin.patched)
}

func TestUpdateBarberRequiresScope(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")

	res := h.do(barberOf("ann@example.com", booking.ScopeReadBarberData), `mutation($id: ID!) {
		updateBarber(barberID: $id, input: {specialisation: HAIRCUTS}) { id }
	}`, map[string]interface{}{"id": b.ID.Hex()})

	assert.Equal(t, []string{"Unauthorized"}, errorMessages(res))
	assert.Equal(t, 0, h.repo.CallCount("UpdateBarber"))
}

func TestUpstreamFailureHidesProviderResponse(t *testing.T) {
	h := newHarness(t)
	b := h.seedBarber("ann@example.com")
	h.admin.findErr = httperr.ErrUpstream("identity provider",
		errors.New(`GET /api/v2/users-by-email: status 500: {"message":"db password rejected"}`))

	res := h.do(admin(booking.ScopeUpdateBarber), `mutation($id: ID!) {
		updateBarber(barberID: $id, input: {name: {first: "Anna", last: "Lee"}}) { id }
	}`, map[string]interface{}{"id": b.ID.Hex()})

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "identity provider request failed", res.Errors[0].Message)
}
