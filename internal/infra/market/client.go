package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client fetches quotes from the market data REST API. The http.Client
// timeout bounds every lookup, so a stalled ticker cannot stall a whole
// evaluation pass.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) Quote(ctx context.Context, ticker string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/quote/%s", c.baseURL, url.PathEscape(ticker))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.logger.Debug("quote request start", zap.String("ticker", ticker), zap.String("url", endpoint))
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("quote request failed", zap.String("ticker", ticker), zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer response.Body.Close()

	c.logger.Debug(
		"quote request complete",
		zap.String("ticker", ticker),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode == http.StatusNotFound {
		return nil, domain.ErrTickerNotFound
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, response.StatusCode)
	}

	var payload quotePayload
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	if !payload.Price.Valid {
		return nil, fmt.Errorf("%w: no price for %s", domain.ErrSourceUnavailable, ticker)
	}

	symbol := strings.ToUpper(strings.TrimSpace(payload.Symbol))
	if symbol == "" {
		symbol = strings.ToUpper(ticker)
	}
	currency := payload.Currency
	if currency == "" {
		currency = "USD"
	}

	return &domain.Quote{Ticker: symbol, Price: payload.Price.Decimal, Currency: currency}, nil
}

func (c *Client) CurrentPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	quote, err := c.Quote(ctx, ticker)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return quote.Price, nil
}
