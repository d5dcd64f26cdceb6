package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells which way the market price has to cross the threshold
// for an alert to fire.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

type Alert struct {
	ID        uint
	UserID    uint
	Ticker    string
	Price     decimal.Decimal
	Direction Direction

	// ExpirationTime is the optional deadline after which an untriggered
	// alert is retired. Expired tracks the deadline state: false while the
	// deadline has not passed, true once it has, nil when the alert was
	// created without a deadline.
	ExpirationTime *time.Time
	Expired        *bool

	Triggered     bool
	TriggeredTime *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShouldTrigger reports whether the current market price satisfies the
// alert's condition. Both comparisons are strict: a price exactly at the
// threshold never fires.
func (a Alert) ShouldTrigger(current decimal.Decimal) bool {
	switch a.Direction {
	case DirectionBelow:
		return current.LessThan(a.Price)
	case DirectionAbove:
		return current.GreaterThan(a.Price)
	default:
		return false
	}
}

// DeadlinePassed reports whether the alert carries an expiration deadline
// that is at or before now.
func (a Alert) DeadlinePassed(now time.Time) bool {
	return a.ExpirationTime != nil && !a.ExpirationTime.After(now)
}
