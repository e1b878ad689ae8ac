package verifier

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/moonforge/launchpad/ports"
)

// Ed25519Verifier checks ed25519 signatures for wallets whose address is
// the hex-encoded public key.
type Ed25519Verifier struct{}

// NewEd25519Verifier creates a new ed25519 verifier.
func NewEd25519Verifier() *Ed25519Verifier {
	return &Ed25519Verifier{}
}

var _ ports.SignatureVerifier = (*Ed25519Verifier)(nil)

func (v *Ed25519Verifier) Verify(message []byte, signature string, address string) (bool, error) {
	pubKey, err := hex.DecodeString(address)
	if err != nil {
		return false, fmt.Errorf("failed to decode address: %w", err)
	}
	if len(pubKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pubKey))
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}

	return ed25519.Verify(ed25519.PublicKey(pubKey), message, sig), nil
}
