package ports

// PasswordHasher is the credential store.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenService issues and verifies bearer tokens carrying a user id.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the token subject or domain.ErrInvalidToken.
	Verify(token string) (string, error)
}
