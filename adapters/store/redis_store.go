package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/ports"
)

const (
	challengeKeyPrefix = "launchpad:challenge:"
	latestKeyPrefix    = "launchpad:challenge:latest:"
	userKeyPrefix      = "launchpad:user:"
	userIDKeyPrefix    = "launchpad:user:id:"
	coinKeyPrefix      = "launchpad:coin:"
	coinIndexKey       = "launchpad:coins"
)

// RedisChallengeStore is a Redis implementation of the ChallengeStore
// interface. Each record lives under its own key with the challenge TTL,
// so expired records are reaped by Redis itself. A per-address pointer key
// tracks the most recent record; superseded records stay behind until
// their TTL runs out but are never returned.
type RedisChallengeStore struct {
	client *redis.Client
}

// NewRedisChallengeStore creates a new Redis challenge store.
func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client}
}

var _ ports.ChallengeStore = (*RedisChallengeStore)(nil)

func (s *RedisChallengeStore) Save(ctx context.Context, challenge *core.Challenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}

	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("challenge already expired")
	}

	if err := s.client.Set(ctx, challengeKeyPrefix+challenge.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	if err := s.client.Set(ctx, latestKeyPrefix+challenge.Address, challenge.ID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store latest pointer: %w", err)
	}
	return nil
}

func (s *RedisChallengeStore) Latest(ctx context.Context, address string) (*core.Challenge, error) {
	id, err := s.client.Get(ctx, latestKeyPrefix+address).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to load latest pointer: %w", err)
	}

	payload, err := s.client.Get(ctx, challengeKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Consumed or expired since the pointer was written.
			return nil, core.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	var challenge core.Challenge
	if err := json.Unmarshal([]byte(payload), &challenge); err != nil {
		return nil, fmt.Errorf("failed to decode challenge: %w", err)
	}
	return &challenge, nil
}

func (s *RedisChallengeStore) Delete(ctx context.Context, id string) error {
	// DEL of an absent key is a no-op, which matches the contract.
	if err := s.client.Del(ctx, challengeKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

// RedisUserDirectory is a Redis implementation of the UserDirectory
// interface. Records are keyed by wallet address with a secondary id
// index for deletion.
type RedisUserDirectory struct {
	client *redis.Client
}

// NewRedisUserDirectory creates a new Redis user directory.
func NewRedisUserDirectory(client *redis.Client) *RedisUserDirectory {
	return &RedisUserDirectory{client: client}
}

var _ ports.UserDirectory = (*RedisUserDirectory)(nil)

func (s *RedisUserDirectory) FindByAddress(ctx context.Context, address string) (*core.User, error) {
	payload, err := s.client.Get(ctx, userKeyPrefix+address).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var user core.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

func (s *RedisUserDirectory) Create(ctx context.Context, user *core.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.client.Set(ctx, userKeyPrefix+user.WalletAddress, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	if err := s.client.Set(ctx, userIDKeyPrefix+user.ID, user.WalletAddress, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user id index: %w", err)
	}
	return nil
}

func (s *RedisUserDirectory) Delete(ctx context.Context, id string) error {
	address, err := s.client.Get(ctx, userIDKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to load user id index: %w", err)
	}

	if err := s.client.Del(ctx, userKeyPrefix+address, userIDKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// RedisCoinStore is a Redis implementation of the CoinStore interface.
type RedisCoinStore struct {
	client *redis.Client
}

// NewRedisCoinStore creates a new Redis coin store.
func NewRedisCoinStore(client *redis.Client) *RedisCoinStore {
	return &RedisCoinStore{client: client}
}

var _ ports.CoinStore = (*RedisCoinStore)(nil)

func (s *RedisCoinStore) Save(ctx context.Context, coin *core.Coin) error {
	payload, err := json.Marshal(coin)
	if err != nil {
		return fmt.Errorf("failed to encode coin: %w", err)
	}

	created, err := s.client.SetNX(ctx, coinKeyPrefix+coin.ID, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store coin: %w", err)
	}
	if !created {
		// Update in place, keep the index position.
		if err := s.client.Set(ctx, coinKeyPrefix+coin.ID, payload, 0).Err(); err != nil {
			return fmt.Errorf("failed to update coin: %w", err)
		}
		return nil
	}

	if err := s.client.RPush(ctx, coinIndexKey, coin.ID).Err(); err != nil {
		return fmt.Errorf("failed to index coin: %w", err)
	}
	return nil
}

func (s *RedisCoinStore) FindByID(ctx context.Context, id string) (*core.Coin, error) {
	payload, err := s.client.Get(ctx, coinKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrCoinNotFound
		}
		return nil, fmt.Errorf("failed to load coin: %w", err)
	}

	var coin core.Coin
	if err := json.Unmarshal([]byte(payload), &coin); err != nil {
		return nil, fmt.Errorf("failed to decode coin: %w", err)
	}
	return &coin, nil
}

func (s *RedisCoinStore) List(ctx context.Context) ([]*core.Coin, error) {
	ids, err := s.client.LRange(ctx, coinIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}

	coins := make([]*core.Coin, 0, len(ids))
	for _, id := range ids {
		coin, err := s.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrCoinNotFound) {
				continue
			}
			return nil, err
		}
		coins = append(coins, coin)
	}
	return coins, nil
}
