// Package retry bounds how many times a failed payment may be retried and
// paces the retries with exponential backoff.
package retry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	DefaultTTL        = 30 * time.Minute
)

type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	TTL        time.Duration
}

type Result struct {
	Success bool
	Attempt int
	Error   *apperrors.PaymentError
}

type entry struct {
	mu          sync.Mutex
	attempts    int
	lastTouched time.Time
	removed     bool
}

// Coordinator tracks retry attempts per key. Keys never contend with each
// other; calls on the same key are serialized.
type Coordinator struct {
	cfg     Config
	entries sync.Map
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

type Option func(*Coordinator)

// WithClock replaces time.Now and the backoff sleep.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

func NewCoordinator(cfg Config, opts ...Option) *Coordinator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	c := &Coordinator{
		cfg:   cfg,
		now:   time.Now,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Coordinator) MaxRetries() int {
	return c.cfg.MaxRetries
}

// Backoff returns the wait before the given attempt (1-based).
func (c *Coordinator) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return c.cfg.BaseDelay << (attempt - 1)
}

func (c *Coordinator) load(key string) *entry {
	for {
		v, _ := c.entries.LoadOrStore(key, &entry{})
		e := v.(*entry)
		e.mu.Lock()
		if !e.removed {
			return e
		}
		// lost a race with Clear or Sweep; retry with a fresh entry
		e.mu.Unlock()
	}
}

// Reserve consumes the next attempt for key without waiting. The caller
// owns the backoff, reported by Backoff(result.Attempt). Once the ceiling
// is reached every further call fails with MAX_RETRIES_EXCEEDED until the
// key is cleared or expires.
func (c *Coordinator) Reserve(ctx context.Context, key string) Result {
	e := c.load(key)
	if e.attempts >= c.cfg.MaxRetries {
		e.lastTouched = c.now()
		attempts := e.attempts
		e.mu.Unlock()
		slog.WarnContext(ctx, "retry ceiling reached", "retry_key", key, "attempts", attempts)
		return Result{Attempt: attempts, Error: apperrors.ErrMaxRetriesExceeded()}
	}
	e.attempts++
	e.lastTouched = c.now()
	attempt := e.attempts
	e.mu.Unlock()
	return Result{Success: true, Attempt: attempt}
}

// Retry reserves the next attempt for key and waits out its backoff.
func (c *Coordinator) Retry(ctx context.Context, key string) Result {
	res := c.Reserve(ctx, key)
	if !res.Success {
		return res
	}

	delay := c.Backoff(res.Attempt)
	slog.InfoContext(ctx, "retrying payment", "retry_key", key, "attempt", res.Attempt, "delay", delay.String())

	if err := c.sleep(ctx, delay); err != nil {
		return Result{Attempt: res.Attempt, Error: apperrors.ErrNetwork().WithDetail(err.Error())}
	}
	return res
}

func (c *Coordinator) Clear(key string) {
	v, ok := c.entries.Load(key)
	if !ok {
		return
	}
	e := v.(*entry)
	e.mu.Lock()
	e.removed = true
	c.entries.CompareAndDelete(key, e)
	e.mu.Unlock()
}

func (c *Coordinator) Attempts(key string) int {
	v, ok := c.entries.Load(key)
	if !ok {
		return 0
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return 0
	}
	return e.attempts
}

// Sweep evicts entries idle for longer than the TTL and reports how many
// were removed.
func (c *Coordinator) Sweep(now time.Time) int {
	removed := 0
	c.entries.Range(func(k, v any) bool {
		e := v.(*entry)
		e.mu.Lock()
		if !e.removed && now.Sub(e.lastTouched) > c.cfg.TTL {
			e.removed = true
			c.entries.CompareAndDelete(k, e)
			removed++
		}
		e.mu.Unlock()
		return true
	})
	return removed
}

// Start runs the eviction janitor until ctx is done.
func (c *Coordinator) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.cfg.TTL / 2
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.Sweep(c.now()); n > 0 {
					slog.Info("evicted stale retry records", "count", n)
				}
			}
		}
	}()
}
