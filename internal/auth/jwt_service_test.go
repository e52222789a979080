package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	s, err := NewJWTService("test-secret", "HS256", 0)
	require.NoError(t, err)
	return s
}

func TestNewJWTService(t *testing.T) {
	s, err := NewJWTService("secret", "HS512", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTokenExpiry, s.DefaultTTL())

	_, err = NewJWTService("secret", "RS256", time.Minute)
	assert.Error(t, err)
	_, err = NewJWTService("secret", "none", time.Minute)
	assert.Error(t, err)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	s := newTestJWTService(t)

	token, err := s.Issue("user-1", "user@example.com", 0)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "user@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_IssueHonoursTTL(t *testing.T) {
	s := newTestJWTService(t)

	token, err := s.Issue("user-1", "user@example.com", 2*time.Hour)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_VerifyFailures(t *testing.T) {
	s := newTestJWTService(t)

	expiredIssuer := newTestJWTService(t)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("user-1", "user@example.com", 30*time.Minute)
	require.NoError(t, err)

	other, err := NewJWTService("other-secret", "HS256", 0)
	require.NoError(t, err)
	foreign, err := other.Issue("user-1", "user@example.com", 0)
	require.NoError(t, err)

	otherAlg, err := NewJWTService("test-secret", "HS384", 0)
	require.NoError(t, err)
	wrongAlg, err := otherAlg.Issue("user-1", "user@example.com", 0)
	require.NoError(t, err)

	noSubject, err := s.Issue("", "user@example.com", 0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, ErrTokenExpired},
		{"bad signature", foreign, ErrTokenSignature},
		{"other algorithm", wrongAlg, ErrTokenSignature},
		{"garbage", "not-a-jwt", ErrTokenMalformed},
		{"empty", "", ErrTokenMalformed},
		{"missing subject", noSubject, ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := s.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
