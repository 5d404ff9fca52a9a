package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces successive requests by a fixed interval. It wraps a token
// bucket with burst 1 so the first call never waits and each later call is
// held until the interval has elapsed. A zero interval never waits.
type Pacer struct {
	lim *rate.Limiter
}

func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *Pacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}
