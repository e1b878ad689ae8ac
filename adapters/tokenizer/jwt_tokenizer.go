package tokenizer

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/ports"
)

// AudienceAccess pins tokens to this service's access scope.
const AudienceAccess = "launchpad:access"

// DefaultAccessTTL is the default lifetime of an access token.
const DefaultAccessTTL = time.Hour

// JWTTokenizer implements the TokenIssuer interface with RS256. The
// private key signs and the public key verifies, so validate-only
// deployments never hold signing capability.
type JWTTokenizer struct {
	signKey   *rsa.PrivateKey
	verifyKey *rsa.PublicKey
	accessTTL time.Duration
}

// NewJWTTokenizer creates a tokenizer that can both mint and validate.
func NewJWTTokenizer(signKey *rsa.PrivateKey, accessTTL time.Duration) *JWTTokenizer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &JWTTokenizer{
		signKey:   signKey,
		verifyKey: &signKey.PublicKey,
		accessTTL: accessTTL,
	}
}

// NewJWTVerifier creates a validate-only tokenizer from the public key.
func NewJWTVerifier(verifyKey *rsa.PublicKey) *JWTTokenizer {
	return &JWTTokenizer{verifyKey: verifyKey}
}

var _ ports.TokenIssuer = (*JWTTokenizer)(nil)

// Mint produces a signed access token with the address as subject.
func (t *JWTTokenizer) Mint(address string) (string, error) {
	if t.signKey == nil {
		return "", core.ErrSigningUnavailable
	}

	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{AudienceAccess},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signedToken, err := token.SignedString(t.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signedToken, nil
}

// Validate checks signature, expiry and audience and returns the subject
// address.
func (t *JWTTokenizer) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.verifyKey, nil
	}, jwt.WithAudience(AudienceAccess))

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return "", core.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", core.ErrInvalidToken
	}

	return claims.Subject, nil
}
