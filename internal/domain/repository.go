package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramUserID int64) (*User, error)
	GetByID(ctx context.Context, userID uint) (*User, error)
	Create(ctx context.Context, user *User) error
}

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	// ListPending returns every alert still eligible for evaluation:
	// not triggered and not expired, including alerts created without a
	// deadline.
	ListPending(ctx context.Context) ([]Alert, error)
	ListByUser(ctx context.Context, userID uint) ([]Alert, error)
	SearchByOwner(ctx context.Context, userID uint, term string) ([]Alert, error)
	// MarkTriggered commits the one-way pending-to-triggered transition.
	// It returns ErrNotFound when the alert does not exist or was already
	// resolved, so overlapping passes cannot trigger the same alert twice.
	MarkTriggered(ctx context.Context, alertID uint, when time.Time) error
	// MarkExpired commits the one-way pending-to-expired transition under
	// the same guard.
	MarkExpired(ctx context.Context, alertID uint) error
	Delete(ctx context.Context, userID uint, alertID uint) error
}
