package core

import "errors"

var (
	ErrInvalidAddress     = errors.New("invalid wallet address")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrCoinNotFound       = errors.New("coin not found")
	ErrInvalidCoin        = errors.New("invalid coin parameters")
	ErrSigningUnavailable = errors.New("tokenizer has no signing key")
)
