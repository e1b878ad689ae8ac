// Package verifier provides signature-verification adapters for the
// wallet schemes the launchpad accepts.
package verifier

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/moonforge/launchpad/ports"
)

// EthereumVerifier checks EIP-191 personal-sign signatures. The wallet
// signs the raw challenge text; the signer address is recovered from the
// signature and compared to the claimed one.
type EthereumVerifier struct{}

// NewEthereumVerifier creates a new Ethereum personal-sign verifier.
func NewEthereumVerifier() *EthereumVerifier {
	return &EthereumVerifier{}
}

var _ ports.SignatureVerifier = (*EthereumVerifier)(nil)

func (v *EthereumVerifier) Verify(message []byte, signature string, address string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("not a hex address: %q", address)
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return false, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	// Wallets encode the recovery id as 27/28; SigToPub expects 0/1.
	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", err)
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	return recovered == common.HexToAddress(address), nil
}
