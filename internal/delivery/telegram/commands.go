package telegram

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const HelpText = `Commands:
/start - register
/help - show this help
/quote <ticker>
/add <ticker> <above|below> <price> [expiration]
/alerts - list your alerts
/search <term> - find alerts by ticker substring
/delete <alert_id>

Notes:
- Tickers are 1-10 characters and case-insensitive.
- An alert fires when the price moves strictly past your threshold.
- Expiration is optional, RFC 3339 format, e.g. 2026-12-31T00:00:00Z.
Example:
/add AAPL below 150
/add MSFT above 300 2026-12-31T00:00:00Z
`

var ErrInvalidArguments = errors.New("invalid arguments")

func ParseAddAlertArgs(args string) (ticker, direction, price string, expiresAt *time.Time, err error) {
	parts := strings.Fields(args)
	if len(parts) < 3 || len(parts) > 4 {
		return "", "", "", nil, ErrInvalidArguments
	}
	if len(parts) == 4 {
		parsed, parseErr := time.Parse(time.RFC3339, parts[3])
		if parseErr != nil {
			return "", "", "", nil, ErrInvalidArguments
		}
		expiresAt = &parsed
	}
	return parts[0], parts[1], parts[2], expiresAt, nil
}

func ParseTicker(args string) (string, error) {
	ticker := strings.TrimSpace(args)
	if ticker == "" {
		return "", ErrInvalidArguments
	}
	return ticker, nil
}

func ParseAlertID(args string) (uint, error) {
	idStr := strings.TrimSpace(args)
	if idStr == "" {
		return 0, ErrInvalidArguments
	}
	value, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	return uint(value), nil
}
