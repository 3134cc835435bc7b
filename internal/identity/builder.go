package identity

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

type EmailLookup interface {
	UserEmail(ctx context.Context, userID string) (string, error)
}

// ContextBuilder resolves the bearer credential of a request into a Caller.
// It never fails: anything that goes wrong yields the anonymous caller, and
// the request is refused later, at the first protected field or mutation.
type ContextBuilder struct {
	verifier TokenVerifier
	users    EmailLookup
	domain   string
	logger   logrus.FieldLogger
}

func NewContextBuilder(
	verifier TokenVerifier,
	users EmailLookup,
	domain string,
	logger logrus.FieldLogger,
) *ContextBuilder {
	return &ContextBuilder{
		verifier: verifier,
		users:    users,
		domain:   domain,
		logger:   logger,
	}
}

func (b *ContextBuilder) Build(ctx context.Context, authorization string) Caller {
	token, ok := bearerToken(authorization)
	if !ok {
		return Anonymous()
	}

	claims, err := b.verifier.Verify(ctx, token)
	if err != nil {
		b.logger.WithError(err).Debug("rejecting bearer token")
		return Anonymous()
	}

	caller := Caller{
		Subject:     claims.Subject,
		Permissions: claims.Permissions,
		Machine:     !claims.EndUser(b.domain),
	}

	if caller.Machine {
		return caller
	}

	email, err := b.users.UserEmail(ctx, claims.Subject)
	if err != nil {
		b.logger.WithError(err).WithField("subject", claims.Subject).Warn("caller email lookup failed")
		return Anonymous()
	}
	caller.Email = email
	return caller
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
