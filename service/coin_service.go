package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/ports"
)

const maxSymbolLen = 10

// CoinParams are the creator-supplied fields of a new listing.
type CoinParams struct {
	Name         string
	Symbol       string
	Description  string
	ImageURL     string
	TotalSupply  decimal.Decimal
	InitialPrice decimal.Decimal
}

// CoinService manages launchpad listings. Actual on-chain publishing is
// performed by an external pipeline consuming coin.created events.
type CoinService struct {
	coins    ports.CoinStore
	eventPub ports.EventPublisher
	log      *zap.Logger

	now func() time.Time
}

// NewCoinService creates a new coin service. The event publisher may be
// nil, in which case no events are emitted.
func NewCoinService(coins ports.CoinStore, eventPub ports.EventPublisher, log *zap.Logger) *CoinService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CoinService{
		coins:    coins,
		eventPub: eventPub,
		log:      log,
		now:      time.Now,
	}
}

// Create validates and persists a listing for the creator, then hands it
// to the launch pipeline via the event stream.
func (s *CoinService) Create(ctx context.Context, creatorAddress string, params CoinParams) (*core.Coin, error) {
	if creatorAddress == "" {
		return nil, core.ErrInvalidAddress
	}
	if params.Name == "" || params.Symbol == "" || len(params.Symbol) > maxSymbolLen {
		return nil, core.ErrInvalidCoin
	}
	if !params.TotalSupply.IsPositive() || params.InitialPrice.IsNegative() {
		return nil, core.ErrInvalidCoin
	}

	coin := &core.Coin{
		ID:             uuid.New().String(),
		CreatorAddress: creatorAddress,
		Name:           params.Name,
		Symbol:         params.Symbol,
		Description:    params.Description,
		ImageURL:       params.ImageURL,
		TotalSupply:    params.TotalSupply,
		InitialPrice:   params.InitialPrice,
		CreatedAt:      s.now(),
	}

	if err := s.coins.Save(ctx, coin); err != nil {
		return nil, fmt.Errorf("failed to save coin: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishCoinCreated(ctx, coin.ID, coin.CreatorAddress); err != nil {
			// The listing is stored; the pipeline can be replayed later.
			s.log.Warn("failed to publish coin created event",
				zap.String("coin_id", coin.ID),
				zap.Error(err))
		}
	}

	return coin, nil
}

// Get returns a listing by id.
func (s *CoinService) Get(ctx context.Context, id string) (*core.Coin, error) {
	return s.coins.FindByID(ctx, id)
}

// List returns all listings in creation order.
func (s *CoinService) List(ctx context.Context) ([]*core.Coin, error) {
	return s.coins.List(ctx)
}
