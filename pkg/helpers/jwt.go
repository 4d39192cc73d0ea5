package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers malformed tokens, bad signatures, and expired tokens.
// Callers present one generic message for all three so a client cannot tell
// which check failed.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager handles generation and validation of signed bearer tokens
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	m := &JWTManager{
		Secret: []byte(secret),
		TTL:    ttl,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// Claims are the identity facts embedded in every issued token.
// The wire field names match the original API contract.
type Claims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"userName"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed token for the given identity, expiring TTL
// from now. Every call produces a fresh token; previously issued tokens for
// the same identity stay valid until their own expiry.
func (m *JWTManager) GenerateToken(userID, email, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.TTL)
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			// The token id makes every issued token unique even within the
			// same second.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ParseToken verifies the signature and expiry and returns the claims.
func (m *JWTManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
