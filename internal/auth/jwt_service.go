package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultAccessTokenExpiry is used when the service is built without an explicit lifetime.
const DefaultAccessTokenExpiry = 30 * time.Minute

var (
	// ErrTokenMalformed is returned for strings that are not a JWT.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature is returned when the signature or algorithm does not match.
	ErrTokenSignature = errors.New("token signature is invalid")
	// ErrTokenExpired is returned for tokens past their exp claim.
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenInvalid covers every other validation failure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents JWT claims. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the user the token was issued for.
func (c *Claims) UserID() string {
	return c.Subject
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a JWT service for an HMAC algorithm (HS256, HS384 or HS512).
func NewJWTService(secret, algorithm string, ttl time.Duration) (*JWTService, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// DefaultTTL returns the lifetime used when Issue is called with ttl <= 0.
func (s *JWTService) DefaultTTL() time.Duration {
	return s.ttl
}

// Issue signs an access token for the user. A ttl <= 0 selects the default lifetime.
func (s *JWTService) Issue(userID, email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the claims. Expected failures
// are reported as one of the ErrToken* errors.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}
