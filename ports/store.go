package ports

import (
	"context"

	"github.com/moonforge/launchpad/core"
)

// ChallengeStore persists outstanding authentication challenges. Records
// carry an absolute expiry; the backing engine guarantees eventual removal
// of expired records.
type ChallengeStore interface {
	// Save persists a new challenge. Multiple outstanding challenges per
	// address are valid; Save never deduplicates.
	Save(ctx context.Context, challenge *core.Challenge) error

	// Latest returns the most recently issued outstanding challenge for an
	// address, or core.ErrChallengeNotFound. Older outstanding challenges
	// are never returned.
	Latest(ctx context.Context, address string) (*core.Challenge, error)

	// Delete removes a challenge by id. Deleting an absent id is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// UserDirectory stores user records keyed by wallet address.
type UserDirectory interface {
	FindByAddress(ctx context.Context, address string) (*core.User, error)
	Create(ctx context.Context, user *core.User) error
	Delete(ctx context.Context, id string) error
}

// CoinStore stores launchpad coin listings.
type CoinStore interface {
	Save(ctx context.Context, coin *core.Coin) error
	FindByID(ctx context.Context, id string) (*core.Coin, error)
	List(ctx context.Context) ([]*core.Coin, error)
}
