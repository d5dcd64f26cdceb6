package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, zap.NewNop()), server
}

func TestQuoteDecodesNumericPrice(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/quote/AAPL" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"symbol":"aapl","price":149.99,"currency":"USD"}`))
	})

	quote, err := client.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if quote.Ticker != "AAPL" {
		t.Fatalf("ticker=%s want AAPL", quote.Ticker)
	}
	if quote.Price.String() != "149.99" {
		t.Fatalf("price=%s want 149.99", quote.Price.String())
	}
}

func TestQuoteDecodesStringPrice(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"MSFT","price":"310.5"}`))
	})

	quote, err := client.Quote(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if quote.Price.String() != "310.5" {
		t.Fatalf("price=%s want 310.5", quote.Price.String())
	}
	if quote.Currency != "USD" {
		t.Fatalf("currency=%s want USD fallback", quote.Currency)
	}
}

func TestQuoteMapsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Quote(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrTickerNotFound) {
		t.Fatalf("err=%v want ErrTickerNotFound", err)
	}
}

func TestQuoteMapsServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CurrentPrice(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("err=%v want ErrSourceUnavailable", err)
	}
}

func TestQuoteRejectsNullPrice(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"AAPL","price":null}`))
	})

	_, err := client.Quote(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("err=%v want ErrSourceUnavailable", err)
	}
}
