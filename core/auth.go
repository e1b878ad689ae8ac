package core

import "time"

// ChallengePrefix is the fixed prefix of every challenge text. The full
// text is what the wallet signs and must match the stored record
// byte-for-byte at verification time.
const ChallengePrefix = "Sign this message to authenticate with our app: "

// Challenge represents an outstanding authentication challenge
type Challenge struct {
	ID        string    // Unique identifier for the challenge
	Address   string    // Wallet address the challenge was issued to
	Nonce     string    // Random hex nonce embedded in the text
	Text      string    // Exact text the wallet signs
	IssuedAt  time.Time // When the challenge was created
	ExpiresAt time.Time // When the challenge expires
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// User represents an account identified by its wallet address
type User struct {
	ID            string    // Unique identifier for the user
	WalletAddress string    // Identifying key, immutable once created
	CreatedAt     time.Time // When the user record was created
}
