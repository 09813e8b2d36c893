package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claims")
)

// SessionClaims represents the JWT claims for a user session. The five
// fields user id (subject), user type, access token, verification flag
// and email must survive an encode/decode round trip unchanged; name
// and image are carried for display but not guaranteed by the codec.
type SessionClaims struct {
	UserType                  string `json:"user_type"`
	AccessToken               string `json:"access_token"`
	EmailVerificationRequired bool   `json:"email_verification_required"`
	Email                     string `json:"email"`
	Name                      string `json:"name,omitempty"`
	Image                     string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim, which carries the user id.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// TokenManager handles JWT session token generation and validation
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a new TokenManager. maxAgeDays is the session
// lifetime in days.
func NewTokenManager(secret string, issuer string, maxAgeDays int) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(maxAgeDays) * 24 * time.Hour,
	}
}

// GenerateToken signs a session token for an authenticated user.
func (tm *TokenManager) GenerateToken(claims *SessionClaims) (string, error) {
	now := time.Now()

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    tm.issuer,
		Subject:   claims.Subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a session token and returns the claims
func (tm *TokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// GetExpirationTime returns the token expiration duration
func (tm *TokenManager) GetExpirationTime() time.Duration {
	return tm.ttl
}
