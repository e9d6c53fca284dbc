package worker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_BacksOffOnFailures(t *testing.T) {
	r := RetryPolicy{Base: time.Second, Max: 3 * time.Second, Paused: 30 * time.Second}

	for attempts, base := range []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second} {
		wait, counted := r.next(attempts, errors.New("smtp: timeout"))
		assert.True(t, counted)
		assert.GreaterOrEqual(t, wait, base, "attempts=%d", attempts)
		assert.LessOrEqual(t, wait, base+base/2, "attempts=%d", attempts)
	}
}

func TestRetryPolicy_OpenCircuitWaitsWithoutCounting(t *testing.T) {
	r := RetryPolicy{Base: time.Second, Max: time.Minute, Paused: 30 * time.Second}

	wait, counted := r.next(MaxAttempts-1, fmt.Errorf("send confirmation for commande 7: %w", infra.ErrCircuitOpen))
	assert.False(t, counted)
	assert.Equal(t, 30*time.Second, wait)
}

func TestPool_SetRetryPolicyFillsDefaults(t *testing.T) {
	p := NewPool(nil, "test", 0)
	assert.Equal(t, 1, p.size)
	assert.Equal(t, DefaultRetryPolicy(), p.retry)

	p.SetRetryPolicy(RetryPolicy{Base: time.Minute})
	assert.Equal(t, time.Minute, p.retry.Base)
	assert.Equal(t, time.Minute, p.retry.Max)
	assert.Equal(t, infra.DefaultCBConfig().OpenTimeout, p.retry.Paused)
	assert.Equal(t, time.Second, p.retry.Tick)
	assert.Equal(t, "delayed:test", p.delayedKey())
}
