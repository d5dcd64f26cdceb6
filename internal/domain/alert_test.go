package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestShouldTriggerBelow(t *testing.T) {
	alert := Alert{Ticker: "AAPL", Price: decimal.NewFromInt(150), Direction: DirectionBelow}

	if !alert.ShouldTrigger(decimal.RequireFromString("149.99")) {
		t.Fatalf("below alert must fire at 149.99 against threshold 150")
	}
	if alert.ShouldTrigger(decimal.RequireFromString("150.01")) {
		t.Fatalf("below alert must not fire at 150.01 against threshold 150")
	}
	if alert.ShouldTrigger(decimal.NewFromInt(150)) {
		t.Fatalf("below alert must not fire at exactly the threshold")
	}
}

func TestShouldTriggerAbove(t *testing.T) {
	alert := Alert{Ticker: "MSFT", Price: decimal.NewFromInt(300), Direction: DirectionAbove}

	if !alert.ShouldTrigger(decimal.NewFromInt(310)) {
		t.Fatalf("above alert must fire at 310 against threshold 300")
	}
	if alert.ShouldTrigger(decimal.NewFromInt(290)) {
		t.Fatalf("above alert must not fire at 290 against threshold 300")
	}
	if alert.ShouldTrigger(decimal.NewFromInt(300)) {
		t.Fatalf("above alert must not fire at exactly the threshold")
	}
}

func TestDeadlinePassed(t *testing.T) {
	now := time.Now().UTC()

	if (Alert{}).DeadlinePassed(now) {
		t.Fatalf("alert without a deadline never passes it")
	}

	past := now.Add(-time.Minute)
	if !(Alert{ExpirationTime: &past}).DeadlinePassed(now) {
		t.Fatalf("deadline one minute ago must count as passed")
	}

	future := now.Add(time.Minute)
	if (Alert{ExpirationTime: &future}).DeadlinePassed(now) {
		t.Fatalf("deadline one minute ahead must not count as passed")
	}

	if !(Alert{ExpirationTime: &now}).DeadlinePassed(now) {
		t.Fatalf("deadline exactly now must count as passed")
	}
}
