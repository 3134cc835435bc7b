package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"invalid input", ErrInvalidInput("bad %s", "id"), CodeInvalidInput},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrNotFound("nope")), CodeNotFound},
		{"reference", ErrInvalidReference("Barber ID is invalid"), CodeInvalidReference},
		{"unauthorized", ErrUnauthorized(), CodeUnauthorized},
		{"upstream", ErrUpstream("identity", errors.New("boom")), CodeUpstreamFailure},
		{"plain", errors.New("plain"), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Code(tc.err))
		})
	}
}

func TestUnauthorizedMessageIsFixed(t *testing.T) {
	assert.Equal(t, "Unauthorized", ErrUnauthorized().Error())
	assert.True(t, IsBusiness(ErrUnauthorized(), CodeUnauthorized))
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrUpstream("object store", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "object store")
}

func TestExtensionsCarryCode(t *testing.T) {
	be := ErrNotFound("missing").(BusinessError)
	assert.Equal(t, map[string]interface{}{"code": CodeNotFound}, be.Extensions())
}

func TestRedactedDropsUpstreamCause(t *testing.T) {
	err := fmt.Errorf("create barber: %w", ErrUpstream("identity provider", errors.New("POST /api/v2/users: status 409: {\"message\":\"secret\"}")))

	red := Redacted(err)
	assert.Equal(t, "identity provider request failed", red.Error())
	assert.True(t, IsBusiness(red, CodeUpstreamFailure))

	nf := ErrNotFound("Barber not found")
	assert.Equal(t, nf, Redacted(nf))
}
