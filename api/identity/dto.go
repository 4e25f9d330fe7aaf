package identity

// TokenResponse carries a session token.
type TokenResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}
