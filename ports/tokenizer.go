package ports

// TokenIssuer mints and validates bearer credentials bound to a wallet
// address. Minting requires the signing key; validation only needs the
// public half, so a validate-only implementation is valid.
type TokenIssuer interface {
	// Mint produces a signed access token with the address as subject.
	Mint(address string) (string, error)

	// Validate checks signature and expiry and returns the subject address.
	Validate(token string) (string, error)
}
