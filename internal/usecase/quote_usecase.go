package usecase

import (
	"context"
	"errors"

	"github.com/NasaVasa/stocky/internal/domain"
)

type QuoteUsecase struct {
	prices domain.PriceSource
}

func NewQuoteUsecase(prices domain.PriceSource) *QuoteUsecase {
	return &QuoteUsecase{prices: prices}
}

func (u *QuoteUsecase) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	normalized, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	quote, err := u.prices.Quote(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrTickerNotFound) {
			return nil, ErrUnknownTicker
		}
		return nil, err
	}
	return quote, nil
}
