package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// ErrIdentityRejected is returned when the identity provider does not accept a token.
var ErrIdentityRejected = errors.New("identity token rejected")

// Identity is the verified subject of an external identity token.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier verifies a token issued by an external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// GoogleVerifier validates Google ID tokens for one OAuth client id.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewGoogleVerifier creates a verifier bound to the OAuth client id.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify checks the token signature, audience and expiry with Google's public keys.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id not configured", ErrIdentityRejected)
	}
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityRejected, err)
	}
	return identityFromPayload(payload)
}

func identityFromPayload(payload *idtoken.Payload) (*Identity, error) {
	claim := func(name string) string {
		if s, ok := payload.Claims[name].(string); ok {
			return s
		}
		return ""
	}

	identity := &Identity{
		Subject: payload.Subject,
		Email:   claim("email"),
		Name:    claim("name"),
		Picture: claim("picture"),
	}
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: missing subject or email", ErrIdentityRejected)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%w: email not verified", ErrIdentityRejected)
	}
	if identity.Name == "" {
		identity.Name = identity.Email
	}
	return identity, nil
}

// StaticVerifier accepts any non-empty token and returns a fixed identity.
// It is only wired when AUTH_MOCK_GOOGLE is set, for local development.
type StaticVerifier struct {
	Identity Identity
}

// NewDevVerifier returns the development identity used before Google sign-in is configured.
func NewDevVerifier() *StaticVerifier {
	return &StaticVerifier{Identity: Identity{
		Subject: "google-id-123",
		Email:   "user@example.com",
		Name:    "Test User",
		Picture: "https://example.com/avatar.jpg",
	}}
}

// Verify returns the configured identity.
func (v *StaticVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrIdentityRejected
	}
	identity := v.Identity
	return &identity, nil
}
