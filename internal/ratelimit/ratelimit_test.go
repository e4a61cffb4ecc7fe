package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestUnlimitedDoesNotBlock(t *testing.T) {
	limiter := New(0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait() error on call %d: %v", i, err)
		}
	}
}

func TestLimitReporting(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "unlimited", in: 0, want: 0},
		{name: "negative_is_unlimited", in: -5, want: 0},
		{name: "five_per_second", in: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.in).Limit(); got != tt.want {
				t.Errorf("Limit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	limiter := New(0.001) // effectively never ready after the first call

	ctx, cancel := context.WithCancel(context.Background())
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first Wait() error: %v", err)
	}

	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Error("Wait() after cancel returned nil, want error")
	}
}
