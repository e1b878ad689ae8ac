package ports

import "context"

// EventPublisher notifies other components about domain transitions. The
// external coin launch pipeline consumes CoinCreated from the stream.
type EventPublisher interface {
	PublishLogin(ctx context.Context, address string) error
	PublishUserCreated(ctx context.Context, userID string, address string) error
	PublishCoinCreated(ctx context.Context, coinID string, creatorAddress string) error
}
