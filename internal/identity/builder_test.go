package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
)

const domain = "https://tenant.example.com"

type stubVerifier struct {
	claims *Claims
	err    error
	seen   string
}

func (s *stubVerifier) Verify(_ context.Context, raw string) (*Claims, error) {
	s.seen = raw
	return s.claims, s.err
}

type stubEmails struct {
	email string
	err   error
	calls int
}

func (s *stubEmails) UserEmail(context.Context, string) (string, error) {
	s.calls++
	return s.email, s.err
}

func userClaims() *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "auth0|1",
			Audience: jwt.ClaimStrings{"api", domain + "/userinfo"},
		},
		Permissions: []string{"read:appointments_data"},
	}
}

func TestBuildEndUserFetchesEmail(t *testing.T) {
	v := &stubVerifier{claims: userClaims()}
	emails := &stubEmails{email: "barber@example.com"}
	b := NewContextBuilder(v, emails, domain, logging.Discard())

	c := b.Build(context.Background(), "Bearer abc.def.ghi")

	assert.Equal(t, "abc.def.ghi", v.seen)
	assert.Equal(t, Caller{
		Subject:     "auth0|1",
		Email:       "barber@example.com",
		Permissions: []string{"read:appointments_data"},
	}, c)
}

func TestBuildMachineSkipsEmail(t *testing.T) {
	claims := userClaims()
	claims.Audience = jwt.ClaimStrings{"api"}
	claims.Permissions = []string{"update:barber"}
	emails := &stubEmails{}
	b := NewContextBuilder(&stubVerifier{claims: claims}, emails, domain, logging.Discard())

	c := b.Build(context.Background(), "bearer token")

	assert.True(t, c.Machine)
	assert.True(t, c.HasPermission("update:barber"))
	assert.Empty(t, c.Email)
	assert.Zero(t, emails.calls)
}

func TestBuildDegradesToAnonymous(t *testing.T) {
	cases := []struct {
		name   string
		header string
		v      *stubVerifier
		emails *stubEmails
	}{
		{"no header", "", &stubVerifier{claims: userClaims()}, &stubEmails{}},
		{"basic scheme", "Basic dXNlcjpwYXNz", &stubVerifier{claims: userClaims()}, &stubEmails{}},
		{"empty token", "Bearer ", &stubVerifier{claims: userClaims()}, &stubEmails{}},
		{"bad signature", "Bearer x", &stubVerifier{err: errors.New("bad signature")}, &stubEmails{}},
		{"email lookup fails", "Bearer x", &stubVerifier{claims: userClaims()}, &stubEmails{err: errors.New("503")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewContextBuilder(tc.v, tc.emails, domain, logging.Discard())
			c := b.Build(context.Background(), tc.header)

			assert.False(t, c.Authenticated())
			assert.False(t, c.HasPermission("read:appointments_data"))
		})
	}
}

func TestCallerContextRoundTrip(t *testing.T) {
	assert.Equal(t, Anonymous(), FromContext(context.Background()))

	c := Caller{Subject: "s", Email: "e@example.com"}
	assert.Equal(t, c, FromContext(WithCaller(context.Background(), c)))
}
