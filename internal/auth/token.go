package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Kind separates participants, who sign in with a one-time code from the bot,
// from organizers, who sign in with email and password.
type Kind string

const (
	KindParticipant Kind = "participant"
	KindOrganizer   Kind = "organizer"
)

// KindFor maps a role to the kind of account that may hold it.
func KindFor(role Role) Kind {
	if IsAdmin(string(role)) {
		return KindOrganizer
	}
	return KindParticipant
}

// Identity is the account a token is issued to.
type Identity struct {
	ID         string
	Role       Role
	Name       string
	TelegramID string
}

// Claims is the body of a hackathon API access token.
type Claims struct {
	Role       string `json:"role"`
	Kind       Kind   `json:"kind"`
	Name       string `json:"name,omitempty"`
	TelegramID string `json:"tg_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Organizer() bool {
	return c.Kind == KindOrganizer
}

// ExpiresIn is the time left before the token expires, negative once it has.
// Tokens without an expiry report zero.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// TokenIssuer signs and verifies HS256 access tokens for one issuer.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenIssuer(secret string, ttl time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

func (m *TokenIssuer) Issue(id Identity) (string, error) {
	if id.ID == "" || id.Role == "" {
		return "", ErrInvalidToken
	}

	now := time.Now()
	claims := &Claims{
		Role:       string(id.Role),
		Kind:       KindFor(id.Role),
		Name:       strings.TrimSpace(id.Name),
		TelegramID: id.TelegramID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, issuer and expiry. A token whose kind does not
// fit its role is rejected.
func (m *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(m.issuer))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != KindFor(NormalizeRole(claims.Role)) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Inspect decodes a token's claims without checking the signature or
// expiry. It is for showing what a stored token says, never for trusting it.
func Inspect(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}
