package identity

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Scope       string   `json:"scope"`
	Permissions []string `json:"permissions"`
}

// EndUser reports whether the token was issued to a person rather than a
// machine client. Only person tokens carry the userinfo audience.
func (c *Claims) EndUser(domain string) bool {
	return slices.Contains([]string(c.Audience), userinfoAudience(domain))
}

func userinfoAudience(domain string) string {
	return strings.TrimRight(domain, "/") + "/userinfo"
}

type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// OIDCVerifier checks signature, issuer, audience and expiry against the
// provider's published key set.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier does no network I/O; keys are fetched on first use.
func NewOIDCVerifier(domain, audience string) *OIDCVerifier {
	base := strings.TrimRight(domain, "/")
	keySet := oidc.NewRemoteKeySet(context.Background(), base+"/.well-known/jwks.json")

	return &OIDCVerifier{
		verifier: oidc.NewVerifier(base+"/", keySet, &oidc.Config{
			ClientID:             audience,
			SupportedSigningAlgs: []string{oidc.RS256},
		}),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	var claims Claims
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode token claims: %w", err)
	}
	if claims.Subject == "" {
		claims.Subject = token.Subject
	}
	return &claims, nil
}
