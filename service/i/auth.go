package i

import (
	"time"

	"github.com/google/uuid"
)

// SessionAuthenticator issues and checks the tokens that bind a client to a session.
type SessionAuthenticator interface {
	Issue(sessionID uuid.UUID) (string, error)
	Authenticate(token string) (uuid.UUID, error)
}

// Tokenizer signs claims into a token and verifies them back.
type Tokenizer interface {
	// Generate signs claims into a token that expires after expTime.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode verifies a token and returns its claims, including exp and iss.
	Decode(token string) (map[string]interface{}, error)
}
