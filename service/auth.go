package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/google/uuid"
)

const (
	sessionIDClaim  = "session_id"
	defaultTokenTTL = 12 * time.Hour
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// Auth issues session tokens and resolves them back to session IDs.
type Auth struct {
	tokenizer i.Tokenizer
	ttl       time.Duration
}

// NewAuthService creates an Auth using t to sign tokens valid for ttl.
// A non positive ttl falls back to twelve hours.
func NewAuthService(t i.Tokenizer, ttl time.Duration) (*Auth, error) {
	if t == nil {
		return nil, ErrMissingDependency
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Auth{tokenizer: t, ttl: ttl}, nil
}

// Issue creates a token for a session.
func (a *Auth) Issue(sessionID uuid.UUID) (string, error) {
	return a.tokenizer.Generate(map[string]interface{}{sessionIDClaim: sessionID.String()}, a.ttl)
}

// Authenticate returns the session a token was issued for.
func (a *Auth) Authenticate(token string) (uuid.UUID, error) {
	claims, err := a.tokenizer.Decode(token)
	if err != nil {
		return uuid.Nil, ErrInvalidSessionToken
	}

	raw, ok := claims[sessionIDClaim].(string)
	if !ok {
		return uuid.Nil, ErrInvalidSessionToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidSessionToken
	}
	return id, nil
}
