package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/moonforge/launchpad/ports"
)

const (
	// LoginTopic carries successful authentications.
	LoginTopic = "auth.login"

	// UserCreatedTopic carries first-login user creations.
	UserCreatedTopic = "user.created"

	// CoinCreatedTopic feeds the external launch pipeline.
	CoinCreatedTopic = "coin.created"
)

// LoginEvent is published on every successful login.
type LoginEvent struct {
	Address string `json:"address"`
}

// UserCreatedEvent is published when a wallet authenticates for the first
// time.
type UserCreatedEvent struct {
	UserID  string `json:"user_id"`
	Address string `json:"address"`
}

// CoinCreatedEvent is published when a listing is created; the on-chain
// pipeline consumes it.
type CoinCreatedEvent struct {
	CoinID         string `json:"coin_id"`
	CreatorAddress string `json:"creator_address"`
}

// WatermillPublisher implements the EventPublisher interface using
// Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill event publisher.
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

func (p *WatermillPublisher) PublishLogin(ctx context.Context, address string) error {
	return p.publish(LoginTopic, LoginEvent{Address: address})
}

func (p *WatermillPublisher) PublishUserCreated(ctx context.Context, userID string, address string) error {
	return p.publish(UserCreatedTopic, UserCreatedEvent{UserID: userID, Address: address})
}

func (p *WatermillPublisher) PublishCoinCreated(ctx context.Context, coinID string, creatorAddress string) error {
	return p.publish(CoinCreatedTopic, CoinCreatedEvent{CoinID: coinID, CreatorAddress: creatorAddress})
}

func (p *WatermillPublisher) publish(topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}
