package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

func TestAllowWithinMinuteBudget(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(3, 100, clock.now)

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if limiter.Allow() {
		t.Error("fourth request within the minute should be denied")
	}

	// Window slides: one minute later the budget is back.
	clock.advance(61 * time.Second)
	if !limiter.Allow() {
		t.Error("request after window slide should be allowed")
	}
}

func TestWaitFailsOnDailyBudget(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(100, 2, clock.now)

	ctx := context.Background()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if err := limiter.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	err := limiter.Wait(ctx)
	if !errors.Is(err, ErrDailyLimitExceeded) {
		t.Errorf("err = %v, want ErrDailyLimitExceeded", err)
	}

	// Day window slides too.
	clock.advance(25 * time.Hour)
	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("request after day slide: %v", err)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(1, 100, clock.now)

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Minute budget spent; Wait must give up when the context is cancelled
	// (the fake clock never advances, so the window never slides).
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestGetStatus(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(10, 20, clock.now)

	limiter.Allow()
	limiter.Allow()

	status := limiter.GetStatus()
	if status.RequestsLastMinute != 2 || status.RequestsLastDay != 2 {
		t.Errorf("status = %+v, want 2 requests in both windows", status)
	}
	if status.MinuteLimit != 10 || status.DayLimit != 20 {
		t.Errorf("status limits = %+v", status)
	}

	clock.advance(2 * time.Minute)
	status = limiter.GetStatus()
	if status.RequestsLastMinute != 0 {
		t.Errorf("minute window should be empty after slide, got %d", status.RequestsLastMinute)
	}
	if status.RequestsLastDay != 2 {
		t.Errorf("day window should still hold 2, got %d", status.RequestsLastDay)
	}
}

func TestUnlimitedWindows(t *testing.T) {
	limiter := NewWithClock(0, 0, newFakeClock().now)
	for i := 0; i < 100; i++ {
		if !limiter.Allow() {
			t.Fatal("non-positive budgets must disable limiting")
		}
	}
}
