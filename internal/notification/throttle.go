package notification

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled limits how fast a wrapped sender is called. A send waits for a
// token until its context expires.
type Throttled struct {
	Sender
	limiter *rate.Limiter
}

// Throttle wraps s so it is called at most perSecond times per second.
func Throttle(s Sender, perSecond float64) *Throttled {
	return &Throttled{Sender: s, limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Send implements Sender
func (t *Throttled) Send(ctx context.Context, event StatusChanged) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.Sender.Send(ctx, event)
}
