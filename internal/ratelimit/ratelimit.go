// Package ratelimit provides a small sliding-window limiter for outgoing
// LLM API calls, tracking both a per-minute and a per-day budget.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrDailyLimitExceeded is returned when the per-day budget is exhausted.
// Unlike the per-minute window, the daily window is never waited out.
var ErrDailyLimitExceeded = errors.New("daily request limit exceeded")

// Limiter enforces requests-per-minute and requests-per-day budgets using
// sliding windows. Safe for concurrent use.
type Limiter struct {
	perMinute int
	perDay    int

	mu             sync.Mutex
	minuteRequests []time.Time
	dayRequests    []time.Time

	now func() time.Time
}

// New creates a limiter with the given per-minute and per-day budgets.
// Non-positive budgets disable the corresponding window.
func New(perMinute, perDay int) *Limiter {
	return &Limiter{
		perMinute: perMinute,
		perDay:    perDay,
		now:       time.Now,
	}
}

// NewWithClock creates a limiter with an injected clock, for tests.
func NewWithClock(perMinute, perDay int, now func() time.Time) *Limiter {
	l := New(perMinute, perDay)
	l.now = now
	return l
}

// Wait blocks until a request may proceed under the per-minute window, then
// records the request. It returns ErrDailyLimitExceeded when the daily
// budget is spent and the context error when ctx is done first.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		wait, err := l.reserve()
		if err != nil {
			return err
		}
		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Allow reports whether a request may proceed right now, recording it if so.
func (l *Limiter) Allow() bool {
	wait, err := l.reserve()
	return err == nil && wait <= 0
}

// reserve either records a request (wait == 0), reports how long the caller
// must wait for the minute window to slide, or fails on the daily budget.
func (l *Limiter) reserve() (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.minuteRequests = prune(l.minuteRequests, now.Add(-time.Minute))
	l.dayRequests = prune(l.dayRequests, now.Add(-24*time.Hour))

	if l.perDay > 0 && len(l.dayRequests) >= l.perDay {
		return 0, ErrDailyLimitExceeded
	}
	if l.perMinute > 0 && len(l.minuteRequests) >= l.perMinute {
		oldest := l.minuteRequests[0]
		return oldest.Add(time.Minute).Sub(now), nil
	}

	l.minuteRequests = append(l.minuteRequests, now)
	l.dayRequests = append(l.dayRequests, now)
	return 0, nil
}

// Status is a snapshot of current window usage.
type Status struct {
	RequestsLastMinute int
	RequestsLastDay    int
	MinuteLimit        int
	DayLimit           int
}

// GetStatus returns current usage against both windows.
func (l *Limiter) GetStatus() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.minuteRequests = prune(l.minuteRequests, now.Add(-time.Minute))
	l.dayRequests = prune(l.dayRequests, now.Add(-24*time.Hour))

	return Status{
		RequestsLastMinute: len(l.minuteRequests),
		RequestsLastDay:    len(l.dayRequests),
		MinuteLimit:        l.perMinute,
		DayLimit:           l.perDay,
	}
}

func prune(requests []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(requests) && !requests[idx].After(cutoff) {
		idx++
	}
	return requests[idx:]
}
