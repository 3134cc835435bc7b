package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/handlers"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/middleware"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

type tokenCallers map[string]identity.Caller

func (t tokenCallers) Build(_ context.Context, authorization string) identity.Caller {
	if c, ok := t[authorization]; ok {
		return c
	}
	return identity.Anonymous()
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newRouter(t *testing.T, repo booking.Repository, health map[string]handlers.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	err := RegisterRoutes(r, Dependencies{
		Repo: repo,
		Callers: tokenCallers{
			"Bearer ann": {Subject: "auth0|ann", Email: "ann@example.com", Permissions: []string{booking.ScopeReadBarberData}},
		},
		Registry: prometheus.NewRegistry(),
		Health:   health,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	return r
}

func postGraphQL(r http.Handler, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGraphQLEndpointUsesCallerFromHeader(t *testing.T) {
	repo := bookingtest.NewMemory()
	b := repo.SeedBarber(models.Barber{
		Email:          "ann@example.com",
		Name:           models.Name{First: "Ann", Last: "Lee"},
		Specialisation: "BEARDS",
		Completed:      true,
	})
	r := newRouter(t, repo, nil)

	body := `{"query":"query Barber($id: ID) { barber(barberID: $id) { email } }","variables":{"id":"` + b.ID.Hex() + `"},"operationName":"Barber"}`

	w := postGraphQL(r, body, "Bearer ann")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	var res struct {
		Data struct {
			Barber struct {
				Email string `json:"email"`
			} `json:"barber"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Errors)
	assert.Equal(t, "ann@example.com", res.Data.Barber.Email)

	w = postGraphQL(r, body, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestGraphQLEndpointRejectsMalformedBody(t *testing.T) {
	r := newRouter(t, bookingtest.NewMemory(), nil)

	for _, body := range []string{`not json`, `{}`, `{"query": ""}`} {
		w := postGraphQL(r, body, "")

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "invalid_request")
	}
}

func TestHealth(t *testing.T) {
	r := newRouter(t, bookingtest.NewMemory(), map[string]handlers.Pinger{"mongo": pinger{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	r = newRouter(t, bookingtest.NewMemory(), map[string]handlers.Pinger{"mongo": pinger{err: errors.New("down")}})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "mongo is unreachable")
}

func TestMetricsExposeOperations(t *testing.T) {
	r := newRouter(t, bookingtest.NewMemory(), nil)

	w := postGraphQL(r, `{"query":"query Everyone { barbers { id } }","operationName":"Everyone"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `graphql_operations_total{operation="barbers",outcome="ok"} 1`)
	assert.NotContains(t, w.Body.String(), "Everyone")
}

func TestMetricsOperationLabelIsBounded(t *testing.T) {
	r := newRouter(t, bookingtest.NewMemory(), nil)

	for _, name := range []string{"a1", "a2", "a3"} {
		body := `{"query":"query ` + name + ` { __typename }","operationName":"` + name + `"}`
		require.Equal(t, http.StatusOK, postGraphQL(r, body, "").Code)
	}
	require.Equal(t, http.StatusOK, postGraphQL(r, `{"query":"{ nope"}`, "").Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Contains(t, body, `graphql_operations_total{operation="other",outcome="ok"} 3`)
	assert.Contains(t, body, `graphql_operations_total{operation="other",outcome="error"} 1`)
	assert.NotContains(t, body, `operation="a1"`)
}
