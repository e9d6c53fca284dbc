package infra

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// CloseFunc releases one resource (server, pool, client).
type CloseFunc func(ctx context.Context) error

// Closer releases registered resources in reverse registration order.
// Whatever is still open when ctx expires is closed concurrently with a
// fresh forcedTimeout budget.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	funcs         []namedClose
	forcedTimeout time.Duration
}

type namedClose struct {
	name string
	fn   CloseFunc
}

func NewCloser(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = 2 * time.Second
	}
	return &Closer{forcedTimeout: forcedTimeout}
}

// Add registers fn under name; names only appear in error messages.
func (c *Closer) Add(name string, fn CloseFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedClose{name: name, fn: fn})
}

// Close runs every registered func once (LIFO). Later calls are no-ops.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var failures []string
		for i := len(funcs) - 1; i >= 0; i-- {
			if ctx.Err() != nil {
				failures = append(failures, c.forceClose(funcs[:i+1])...)
				err = fmt.Errorf("shutdown interrupted with %d resource(s) left:\n%s", i+1, strings.Join(failures, "\n"))
				return
			}
			f := funcs[i]
			done := make(chan error, 1)
			go func() { done <- f.fn(ctx) }()

			select {
			case e := <-done:
				if e != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", f.name, e))
				}
			case <-ctx.Done():
				failures = append(failures, c.forceClose(funcs[:i+1])...)
				err = fmt.Errorf("shutdown interrupted with %d resource(s) left:\n%s", i+1, strings.Join(failures, "\n"))
				return
			}
		}
		if len(failures) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(failures, "\n"))
		}
	})
	return err
}

func (c *Closer) forceClose(funcs []namedClose) []string {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []string
	)
	for _, f := range funcs {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()
			if e := f.fn(ctx); e != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("[forced] %s: %v", f.name, e))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return failures
}
