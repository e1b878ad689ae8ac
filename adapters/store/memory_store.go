package store

import (
	"context"
	"sync"
	"time"

	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/ports"
)

// MemoryChallengeStore is an in-memory implementation of the
// ChallengeStore interface, intended for tests and local development.
// Expired records are filtered lazily on read rather than reaped.
type MemoryChallengeStore struct {
	mu     sync.RWMutex
	byID   map[string]core.Challenge
	latest map[string]string // address -> most recent challenge id

	// Now is the clock used for expiry checks, overridable in tests.
	Now func() time.Time
}

// NewMemoryChallengeStore creates a new in-memory challenge store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		byID:   make(map[string]core.Challenge),
		latest: make(map[string]string),
		Now:    time.Now,
	}
}

var _ ports.ChallengeStore = (*MemoryChallengeStore)(nil)

func (s *MemoryChallengeStore) Save(ctx context.Context, challenge *core.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[challenge.ID] = *challenge
	s.latest[challenge.Address] = challenge.ID
	return nil
}

func (s *MemoryChallengeStore) Latest(ctx context.Context, address string) (*core.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.latest[address]
	if !ok {
		return nil, core.ErrChallengeNotFound
	}

	challenge, ok := s.byID[id]
	if !ok || challenge.Expired(s.Now()) {
		// Consumed or expired; both look like absence to callers.
		return nil, core.ErrChallengeNotFound
	}

	cpy := challenge
	return &cpy, nil
}

func (s *MemoryChallengeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
	return nil
}

// MemoryUserDirectory is an in-memory implementation of the UserDirectory
// interface.
type MemoryUserDirectory struct {
	mu        sync.RWMutex
	byAddress map[string]core.User
}

// NewMemoryUserDirectory creates a new in-memory user directory.
func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{
		byAddress: make(map[string]core.User),
	}
}

var _ ports.UserDirectory = (*MemoryUserDirectory)(nil)

func (s *MemoryUserDirectory) FindByAddress(ctx context.Context, address string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byAddress[address]
	if !ok {
		return nil, core.ErrUserNotFound
	}

	cpy := user
	return &cpy, nil
}

func (s *MemoryUserDirectory) Create(ctx context.Context, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byAddress[user.WalletAddress] = *user
	return nil
}

func (s *MemoryUserDirectory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for address, user := range s.byAddress {
		if user.ID == id {
			delete(s.byAddress, address)
			return nil
		}
	}
	return nil
}

// MemoryCoinStore is an in-memory implementation of the CoinStore
// interface.
type MemoryCoinStore struct {
	mu    sync.RWMutex
	byID  map[string]core.Coin
	order []string
}

// NewMemoryCoinStore creates a new in-memory coin store.
func NewMemoryCoinStore() *MemoryCoinStore {
	return &MemoryCoinStore{
		byID: make(map[string]core.Coin),
	}
}

var _ ports.CoinStore = (*MemoryCoinStore)(nil)

func (s *MemoryCoinStore) Save(ctx context.Context, coin *core.Coin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[coin.ID]; !exists {
		s.order = append(s.order, coin.ID)
	}
	s.byID[coin.ID] = *coin
	return nil
}

func (s *MemoryCoinStore) FindByID(ctx context.Context, id string) (*core.Coin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coin, ok := s.byID[id]
	if !ok {
		return nil, core.ErrCoinNotFound
	}

	cpy := coin
	return &cpy, nil
}

func (s *MemoryCoinStore) List(ctx context.Context) ([]*core.Coin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coins := make([]*core.Coin, 0, len(s.order))
	for _, id := range s.order {
		if coin, ok := s.byID[id]; ok {
			cpy := coin
			coins = append(coins, &cpy)
		}
	}
	return coins, nil
}
