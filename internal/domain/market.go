package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrTickerNotFound    = errors.New("ticker not found")
	ErrSourceUnavailable = errors.New("market data source unavailable")
)

type Quote struct {
	Ticker   string
	Price    decimal.Decimal
	Currency string
}

// PriceSource looks up current market data. Every call is an independent
// network request that may fail; callers decide how to degrade.
type PriceSource interface {
	CurrentPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
	Quote(ctx context.Context, ticker string) (*Quote, error)
}
