package infra

import (
	"math/rand"
	"time"
)

// DefaultJitter adds up to 50% on top of the computed delay.
const DefaultJitter = 0.5

// Backoff returns base·2^attempt capped at max, plus a random jitter in
// [0, jitterFactor·delay]. attempt starts at 0.
func Backoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max {
			d = max
			break
		}
	}
	if d > max {
		d = max
	}
	return d + time.Duration(rand.Float64()*jitterFactor*float64(d))
}
