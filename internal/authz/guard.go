// Package authz decides whether the caller of a request may see a protected
// field or run a protected mutation.
package authz

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
)

// BarberFinder is the part of the booking repository the guard needs to
// resolve who owns a record.
type BarberFinder interface {
	GetBarber(ctx context.Context, lookup booking.BarberLookup) (*models.Barber, error)
}

// DenialRecorder is told about every refused check.
type DenialRecorder interface {
	IncAuthzDenied(scope string)
}

type Guard struct {
	barbers BarberFinder
	denials DenialRecorder
	logger  logrus.FieldLogger
}

func NewGuard(
	barbers BarberFinder,
	denials DenialRecorder,
	logger logrus.FieldLogger,
) *Guard {
	return &Guard{
		barbers: barbers,
		denials: denials,
		logger:  logger,
	}
}

// Authorize allows the caller when it is authenticated, holds scope, and its
// email equals ownerEmail. An empty owner never matches.
func (g *Guard) Authorize(caller identity.Caller, ownerEmail, scope string) error {
	if caller.HasPermission(scope) &&
		ownerEmail != "" &&
		strings.EqualFold(caller.Email, ownerEmail) {
		return nil
	}

	if g.denials != nil {
		g.denials.IncAuthzDenied(scope)
	}
	return httperr.ErrUnauthorized()
}

// AuthorizeScope checks only that the caller holds scope. Used by mutations
// that are not tied to one barber.
func (g *Guard) AuthorizeScope(ctx context.Context, scope string) error {
	if identity.FromContext(ctx).HasPermission(scope) {
		return nil
	}
	if g.denials != nil {
		g.denials.IncAuthzDenied(scope)
	}
	return httperr.ErrUnauthorized()
}

// AuthorizeBarber checks the caller against the barber identified by
// barberID. The owner email is looked up once per request through the
// OwnerMemo in ctx.
func (g *Guard) AuthorizeBarber(ctx context.Context, barberID, scope string) error {
	caller := identity.FromContext(ctx)
	if !caller.HasPermission(scope) {
		return g.Authorize(caller, "", scope)
	}

	owner, err := g.ownerEmail(ctx, barberID)
	if err != nil {
		if !httperr.IsBusiness(err, httperr.CodeNotFound) {
			g.logger.WithError(err).WithField("barber_id", barberID).Warn("owner lookup failed")
			return err
		}
		owner = ""
	}
	return g.Authorize(caller, owner, scope)
}

func (g *Guard) ownerEmail(ctx context.Context, barberID string) (string, error) {
	fetch := func() (string, error) {
		b, err := g.barbers.GetBarber(ctx, booking.BarberLookup{ID: barberID})
		if err != nil {
			return "", err
		}
		return b.Email, nil
	}

	if memo := OwnerMemoFrom(ctx); memo != nil {
		return memo.Lookup(barberID, fetch)
	}
	return fetch()
}
