package barber

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBarberInput struct {
	Email          string
	Name           models.Name
	Specialisation string

	// Password is handed to the identity provider and never stored here.
	Password string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBarber struct {
	repo     booking.Repository
	users    IdentityAdmin
	guard    ScopeAuthorizer
	audit    *audit.Dispatcher
	settings IdentitySettings
}

func NewCreateBarber(
	repo booking.Repository,
	users IdentityAdmin,
	guard ScopeAuthorizer,
	audit *audit.Dispatcher,
	settings IdentitySettings,
) *CreateBarber {
	return &CreateBarber{
		repo:     repo,
		users:    users,
		guard:    guard,
		audit:    audit,
		settings: settings,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute registers the barber with the identity provider, grants the barber
// role and stores the profile with the provider's default picture. A failure
// after the account was created leaves that account in place.
func (uc *CreateBarber) Execute(
	ctx context.Context,
	in CreateBarberInput,
) (*models.Barber, error) {

	// --------------------------------------------------
	// 1. Permission
	// --------------------------------------------------
	if err := uc.guard.AuthorizeScope(ctx, booking.ScopeCreateBarber); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Validation
	// --------------------------------------------------
	newBarber := booking.NewBarber{
		Email:          validators.NormalizeEmail(in.Email),
		Name:           in.Name,
		Specialisation: booking.Specialisation(in.Specialisation),
	}
	if err := validators.Struct(newBarber); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, httperr.ErrInvalidInput("invalid input: Password is required")
	}

	_, err := uc.repo.GetBarber(ctx, booking.BarberLookup{Email: newBarber.Email})
	switch {
	case err == nil:
		return nil, httperr.ErrInvalidInput("email already exists")
	case !httperr.IsBusiness(err, httperr.CodeNotFound):
		return nil, err
	}

	// --------------------------------------------------
	// 3. Identity provider account + role
	// --------------------------------------------------
	user, err := uc.users.CreateUser(ctx, identity.CreateUserRequest{
		Connection: uc.settings.Connection,
		Email:      newBarber.Email,
		Password:   in.Password,
		Name:       in.Name.Full(),
	})
	if err != nil {
		return nil, err
	}

	if err := uc.users.AssignRole(ctx, uc.settings.BarberRoleID, user.UserID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Profile
	// --------------------------------------------------
	newBarber.ProfileImageURL = user.Picture

	b, err := uc.repo.CreateBarber(ctx, newBarber)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.NewEvent(
		ctx,
		"barber_created",
		"barber",
		b.ID.Hex(),
		map[string]string{"userID": user.UserID},
	))

	return b, nil
}
