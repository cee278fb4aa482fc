package retry_test

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"newsbrief/internal/resilience/retry"
)

func fastConfig(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("err=%v calls=%d, want nil, 1", err, calls)
	}
}

func TestWithBackoff_RetriesRetryableError(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return syscall.ECONNREFUSED
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("err=%v calls=%d, want nil, 3", err, calls)
	}
}

func TestWithBackoff_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	wantErr := errors.New("bad request")
	err := retry.WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) || calls != 1 {
		t.Fatalf("err=%v calls=%d, want %v after 1 call", err, calls, wantErr)
	}
}

func TestWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return &retry.HTTPError{StatusCode: 503, Message: "unavailable"}
	})
	if err == nil || calls != 3 {
		t.Fatalf("err=%v calls=%d, want error after 3 calls", err, calls)
	}
}

func TestWithBackoff_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastConfig(5)
	cfg.InitialDelay = time.Minute // never elapses; cancel must win

	err := retry.WithBackoff(ctx, cfg, func() error {
		return syscall.ECONNRESET
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"conn refused", syscall.ECONNREFUSED, true},
		{"http 500", &retry.HTTPError{StatusCode: 500}, true},
		{"http 429", &retry.HTTPError{StatusCode: 429}, true},
		{"http 400", &retry.HTTPError{StatusCode: 400}, false},
		{"plain error", errors.New("nope"), false},
	}
	for _, tc := range cases {
		if got := retry.IsRetryable(tc.err); got != tc.want {
			t.Errorf("%s: IsRetryable=%v, want %v", tc.name, got, tc.want)
		}
	}
}
