package ports

// SignatureVerifier checks that a signature over a message was produced by
// the holder of the key behind a wallet address. Implementations may fail
// with an error on malformed input; callers must treat errors as a failed
// verification, never as a reason to abort the flow.
type SignatureVerifier interface {
	Verify(message []byte, signature string, address string) (bool, error)
}
