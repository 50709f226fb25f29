package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workhub/gateway/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrInvalidClaims  = errors.New("invalid token claims")
	ErrMissingSubject = errors.New("missing subject in claims")
)

// Claims are the WorkHub token claims. The upstream signs HS256 tokens
// with the subject set to the username; user_id and role are optional
// extensions and may be absent on older tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Principal is the authenticated caller as seen by the gateway. RawToken
// carries the original bearer token for upstream forwarding: the gateway
// validates tokens but never issues them, and the upstream remains the
// authority on roles and permissions.
type Principal struct {
	Subject  string
	UserID   int64
	Role     string
	RawToken string
}

// TokenValidator verifies WorkHub bearer tokens with the shared signing
// secret. Validation here is a fast-fail; a token that passes can still
// be rejected upstream (deactivated user, revoked access).
type TokenValidator struct {
	secret        []byte
	parserOptions []jwt.ParserOption
}

// NewTokenValidator creates a validator from the JWT configuration.
// When an issuer is configured, tokens from any other issuer are
// rejected; an empty issuer skips the check.
func NewTokenValidator(cfg config.JWTConfig) *TokenValidator {
	v := &TokenValidator{secret: []byte(cfg.Secret)}
	if cfg.Issuer != "" {
		v.parserOptions = append(v.parserOptions, jwt.WithIssuer(cfg.Issuer))
	}
	return v
}

// Validate parses and verifies a bearer token, returning the caller
func (v *TokenValidator) Validate(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, v.parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Principal{
		Subject:  claims.Subject,
		UserID:   claims.UserID,
		Role:     claims.Role,
		RawToken: tokenString,
	}, nil
}
