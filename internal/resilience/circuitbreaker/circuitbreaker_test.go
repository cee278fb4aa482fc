package circuitbreaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"newsbrief/internal/resilience/circuitbreaker"
)

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("test"))

	got, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil || got.(string) != "ok" {
		t.Fatalf("Execute = (%v, %v), want (ok, nil)", got, err)
	}
}

func TestExecute_OpensAfterFailures(t *testing.T) {
	cfg := circuitbreaker.Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
	cb := circuitbreaker.New(cfg)

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if !cb.IsOpen() {
		t.Fatalf("state = %v, want open after repeated failures", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want ErrOpenState", err)
	}
}

func TestConfigs_HaveNames(t *testing.T) {
	for _, cfg := range []circuitbreaker.Config{
		circuitbreaker.ClaudeAPIConfig(),
		circuitbreaker.OpenAIAPIConfig(),
		circuitbreaker.FeedFetchConfig(),
	} {
		if cfg.Name == "" {
			t.Error("config has empty name")
		}
		if cfg.FailureThreshold <= 0 || cfg.FailureThreshold > 1 {
			t.Errorf("%s: threshold %v out of range", cfg.Name, cfg.FailureThreshold)
		}
	}
}
