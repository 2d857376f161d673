package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single rejection for any token failure: bad
// signature, expired, malformed, or missing subject. Callers cannot
// distinguish the reason, which prevents oracle attacks.
var ErrInvalidToken = errors.New("invalid token")

// JWTConfig holds token service configuration. The secret and algorithm are
// deployment-wide constants so tokens stay valid across restarts.
type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
}

// JWTManager issues and verifies stateless HS256 access tokens carrying
// {sub, iat, exp}. Expiry is compared against exact now with no leeway;
// clock skew between issuer and verifier is a documented limitation.
type JWTManager struct {
	config JWTConfig
}

// NewJWTManager creates a JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{
		config: config,
	}
}

// GenerateAccessToken issues a signed token for the given user.
func (m *JWTManager) GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.config.Issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// VerifyAccessToken validates the token and returns the subject user id.
// Every failure collapses into ErrInvalidToken.
func (m *JWTManager) VerifyAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// AccessTokenTTLSeconds returns the configured token lifetime in seconds.
func (m *JWTManager) AccessTokenTTLSeconds() int64 {
	return int64(m.config.AccessTokenTTL.Seconds())
}
