package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin represents a launchpad listing. The on-chain mint address stays
// empty until the external launch pipeline reports back.
type Coin struct {
	ID             string          `json:"id"`
	CreatorAddress string          `json:"creator_address"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	Description    string          `json:"description,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	TotalSupply    decimal.Decimal `json:"total_supply"`
	InitialPrice   decimal.Decimal `json:"initial_price"`
	MintAddress    string          `json:"mint_address,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
