package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the standard claims for access tokens; the subject is
// the wallet address.
type AccessClaims struct {
	jwt.RegisteredClaims
}
