// internal/auth/verifier.go
package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/config"
)

// Identity is the verified caller extracted from a bearer credential.
// SubjectID is the owner key for every entity and blob path.
type Identity struct {
	SubjectID     string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	DisplayName   string `json:"display_name,omitempty"`
}

// TokenVerifier validates a bearer credential against the identity
// provider. It is a thin adapter: signature, expiry, and issuer checks
// happen in the provider's verification machinery, not here.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

type oidcClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer and builds an ID-token verifier
// backed by the provider's published keys.
func NewOIDCVerifier(ctx context.Context, cfg config.AuthConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery: %w", err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Audience}),
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: token verification failed", apperrors.ErrUnauthenticated)
	}

	var claims oidcClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: cannot parse claims", apperrors.ErrUnauthenticated)
	}

	if claims.Sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthenticated)
	}

	return &Identity{
		SubjectID:     claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		DisplayName:   claims.Name,
	}, nil
}
