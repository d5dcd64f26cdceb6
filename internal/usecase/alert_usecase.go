package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotRegistered = errors.New("user not registered")
	ErrInvalidTicker     = errors.New("invalid ticker")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrPastExpiration    = errors.New("expiration in the past")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrUnknownTicker     = errors.New("unknown ticker")
)

type AlertUsecase struct {
	users  domain.UserRepository
	alerts domain.AlertRepository
	now    func() time.Time
}

func NewAlertUsecase(users domain.UserRepository, alerts domain.AlertRepository) *AlertUsecase {
	return &AlertUsecase{users: users, alerts: alerts, now: time.Now}
}

// AddAlert validates and persists a new alert. Nothing is written when
// any field is rejected. Expired starts false when a deadline is given
// and stays nil otherwise, so deadline-less alerts never carry
// expiration state.
func (u *AlertUsecase) AddAlert(ctx context.Context, telegramUserID int64, ticker, direction, price string, expiresAt *time.Time) (*domain.Alert, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	normalizedTicker, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	parsedDirection, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}

	threshold, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || !threshold.IsPositive() {
		return nil, ErrInvalidPrice
	}

	var expired *bool
	if expiresAt != nil {
		if !expiresAt.After(u.now()) {
			return nil, ErrPastExpiration
		}
		notYet := false
		expired = &notYet
	}

	alert := &domain.Alert{
		UserID:         user.ID,
		Ticker:         normalizedTicker,
		Price:          threshold,
		Direction:      parsedDirection,
		ExpirationTime: expiresAt,
		Expired:        expired,
	}

	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, telegramUserID int64) ([]domain.Alert, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	return u.alerts.ListByUser(ctx, user.ID)
}

// SearchAlerts matches the term as a case-insensitive ticker substring;
// an empty term matches every alert the user owns.
func (u *AlertUsecase) SearchAlerts(ctx context.Context, telegramUserID int64, term string) ([]domain.Alert, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	return u.alerts.SearchByOwner(ctx, user.ID, strings.TrimSpace(term))
}

func (u *AlertUsecase) DeleteAlert(ctx context.Context, telegramUserID int64, alertID uint) error {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return ErrUserNotRegistered
		}
		return err
	}

	if err := u.alerts.Delete(ctx, user.ID, alertID); err != nil {
		if err == domain.ErrNotFound {
			return ErrAlertNotFound
		}
		return err
	}

	return nil
}

// NormalizeTicker trims and uppercases a ticker symbol, enforcing the
// 1-10 character limit.
func NormalizeTicker(input string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(input))
	if len(ticker) < 1 || len(ticker) > 10 {
		return "", ErrInvalidTicker
	}
	return ticker, nil
}

func parseDirection(input string) (domain.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "above":
		return domain.DirectionAbove, nil
	case "below":
		return domain.DirectionBelow, nil
	default:
		return "", ErrInvalidDirection
	}
}
