package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:   maxAttempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
		BackoffFactor: 1.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_ExhaustsExactlyMaxAttempts(t *testing.T) {
	transient := errors.New("connection reset")
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return transient
	})
	if calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", calls)
	}
	if !errors.Is(err, transient) {
		t.Errorf("expected last error in chain, got %v", err)
	}
}

func TestDo_RecoversOnRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	rejected := errors.New("invalid api key")
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		return Permanent(rejected)
	})
	if calls != 1 {
		t.Errorf("expected 1 attempt for permanent error, got %d", calls)
	}
	if !errors.Is(err, rejected) {
		t.Errorf("expected unwrapped permanent error, got %v", err)
	}
}

func TestDo_ContextCancelAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, fastConfig(3), func() error {
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestFixedConfig_NoBackoffGrowth(t *testing.T) {
	cfg := FixedConfig(2, 50*time.Millisecond)
	if cfg.MaxAttempts != 2 {
		t.Errorf("expected 2 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.InitialDelay != cfg.MaxDelay || cfg.BackoffFactor != 1.0 {
		t.Errorf("expected fixed delay policy, got %+v", cfg)
	}
}
