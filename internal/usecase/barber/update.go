package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/models"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/validators"
)

type UpdateBarberInput struct {
	Email           *string
	Name            *models.Name
	ProfileImageURL *string
	Specialisation  *string
}

type UpdateBarber struct {
	repo  booking.Repository
	users IdentityAdmin
	guard ScopeAuthorizer
	audit *audit.Dispatcher
}

func NewUpdateBarber(
	repo booking.Repository,
	users IdentityAdmin,
	guard ScopeAuthorizer,
	audit *audit.Dispatcher,
) *UpdateBarber {
	return &UpdateBarber{
		repo:  repo,
		users: users,
		guard: guard,
		audit: audit,
	}
}

// Execute updates the stored profile first, then mirrors a changed email, name
// or picture onto the identity provider account found by the barber's email.
// The stored update is not rolled back if the provider call fails.
func (uc *UpdateBarber) Execute(
	ctx context.Context,
	barberID string,
	in UpdateBarberInput,
) (*models.Barber, error) {

	if err := uc.guard.AuthorizeScope(ctx, booking.ScopeUpdateBarber); err != nil {
		return nil, err
	}

	patch := booking.BarberPatch{
		Name:            in.Name,
		ProfileImageURL: in.ProfileImageURL,
	}
	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		patch.Email = &email
	}
	if in.Specialisation != nil {
		spec := booking.Specialisation(*in.Specialisation)
		patch.Specialisation = &spec
	}

	if patch.Empty() {
		return nil, httperr.ErrInvalidInput("No input provided")
	}
	if err := validators.Struct(patch); err != nil {
		return nil, err
	}

	current, err := uc.repo.GetBarber(ctx, booking.BarberLookup{ID: barberID})
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.UpdateBarber(ctx, barberID, patch)
	if err != nil {
		return nil, err
	}

	var userPatch identity.UserPatch
	if patch.Email != nil && *patch.Email != current.Email {
		userPatch.Email = patch.Email
	}
	if in.Name != nil {
		full := in.Name.Full()
		userPatch.Name = &full
	}
	userPatch.Picture = in.ProfileImageURL

	// The provider account still carries the address from before this update.
	if !userPatch.Empty() {
		user, err := uc.users.FindUserByEmail(ctx, current.Email)
		if err != nil {
			return nil, err
		}
		if err := uc.users.PatchUser(ctx, user.UserID, userPatch); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.NewEvent(ctx, "barber_updated", "barber", b.ID.Hex(), nil))

	return b, nil
}
