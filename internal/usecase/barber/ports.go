package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/identity"
)

// IdentityAdmin is the slice of the identity provider's management API the
// barber use cases drive.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, req identity.CreateUserRequest) (*identity.User, error)
	AssignRole(ctx context.Context, roleID, userID string) error
	FindUserByEmail(ctx context.Context, email string) (*identity.User, error)
	PatchUser(ctx context.Context, userID string, patch identity.UserPatch) error
}

type ScopeAuthorizer interface {
	AuthorizeScope(ctx context.Context, scope string) error
}

type UploadSigner interface {
	SignedUploadURL(ctx context.Context, barberID, extension string) (string, error)
}

// IdentitySettings names where new barber accounts are created and which role
// they receive.
type IdentitySettings struct {
	Connection   string
	BarberRoleID string
}
