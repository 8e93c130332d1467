// Package jwt signs and verifies the session tokens stored in the session cookie.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "student-portal"

// Claims is the token payload
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Manager creates and checks tokens
type Manager struct {
	secretKey     []byte
	tokenLifetime time.Duration
	now           func() time.Time
}

// NewManager creates a new JWT manager.
// lifetime is how long an issued token stays valid.
func NewManager(secretKey string, lifetime time.Duration) *Manager {
	return &Manager{
		secretKey:     []byte(secretKey),
		tokenLifetime: lifetime,
		now:           time.Now,
	}
}

// Lifetime returns the validity period of issued tokens.
func (m *Manager) Lifetime() time.Duration {
	return m.tokenLifetime
}

// GenerateToken issues a signed token for the user
func (m *Manager) GenerateToken(userID uuid.UUID, username string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the claims
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.New("token has no user id")
	}

	return claims, nil
}
