package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/audit"
	"github.com/BruksfildServices01/barber-booking-graphql/internal/domain/booking"
)

// GetSignedURL hands out a pre-signed upload URL for a barber's profile
// image.
type GetSignedURL struct {
	signer UploadSigner
	guard  ScopeAuthorizer
	audit  *audit.Dispatcher
}

func NewGetSignedURL(
	signer UploadSigner,
	guard ScopeAuthorizer,
	audit *audit.Dispatcher,
) *GetSignedURL {
	return &GetSignedURL{
		signer: signer,
		guard:  guard,
		audit:  audit,
	}
}

func (uc *GetSignedURL) Execute(
	ctx context.Context,
	barberID string,
	fileExtension string,
) (string, error) {

	if err := uc.guard.AuthorizeScope(ctx, booking.ScopeCreateBarber); err != nil {
		return "", err
	}

	url, err := uc.signer.SignedUploadURL(ctx, barberID, fileExtension)
	if err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.NewEvent(
		ctx,
		"signed_url_issued",
		"barber",
		barberID,
		map[string]string{"fileExtension": fileExtension},
	))

	return url, nil
}
