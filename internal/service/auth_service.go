package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"threadai/internal/auth"
	apperrors "threadai/internal/errors"
	"threadai/internal/model"
)

// AuthService handles sign-in and bearer token lifecycle.
type AuthService interface {
	GoogleAuth(ctx context.Context, idToken string) (accessToken string, user *model.User, err error)
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
	CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	users      UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	verifier   auth.IdentityVerifier
}

// NewAuthService creates a new authentication service.
func NewAuthService(users UserService, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, verifier auth.IdentityVerifier) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		verifier:   verifier,
	}
}

// GoogleAuth verifies a Google ID token, finds or creates the matching user
// and issues an access token for them.
func (s *authService) GoogleAuth(ctx context.Context, idToken string) (string, *model.User, error) {
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		slog.WarnContext(ctx, "google token rejected", "error", err)
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	accessToken, err := s.jwtService.Issue(user.ID, user.Email, 0)
	if err != nil {
		return "", nil, fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, user, nil
}

// resolveUser looks the identity up by Google subject, then by email (linking
// the subject), and creates the user when neither exists.
func (s *authService) resolveUser(ctx context.Context, identity *auth.Identity) (*model.User, error) {
	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return s.users.LinkGoogleAccount(ctx, user.ID, identity.Subject, identity.Picture)
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	return s.users.CreateFromIdentity(ctx, identity)
}

// Authenticate verifies a bearer token and rejects revoked ones.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.Verify(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	revoked, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

// CurrentUser resolves the token subject. A user deleted after the token was
// issued no longer authenticates.
func (s *authService) CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	user, err := s.users.GetByID(ctx, claims.UserID())
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, err
}

// Logout revokes the access token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := s.jwtService.DefaultTTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}
