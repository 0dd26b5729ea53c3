// Package retry runs node calls in a bounded loop with linear backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/blockchain"
	"github.com/goodnatureofminers/argus-backend/internal/clock"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// DefaultBackoff is the pause after the first failed attempt; the n-th pause is n times longer.
const DefaultBackoff = time.Second

type (
	// Metrics records retry outcomes.
	Metrics interface {
		ObserveAttempt(operation string, err error)
		ObserveExhausted(operation string, interrupted bool)
	}
)

// Operation names one logical call. Name is a stable label; Description goes into error
// text and defaults to Name.
type Operation struct {
	Name        string
	Description string
}

func (o Operation) description() string {
	if o.Description != "" {
		return o.Description
	}
	return o.Name
}

// Config configures an Executor.
type Config struct {
	MaxAttempts int
	// Backoff defaults to DefaultBackoff.
	Backoff time.Duration
	// Sleep defaults to clock.SleepWithContext.
	Sleep clock.SleepFunc
}

// Executor retries failed attempts. Transport and protocol failures are retried alike.
type Executor struct {
	maxAttempts int
	backoff     time.Duration
	sleep       clock.SleepFunc
	metrics     Metrics
	logger      *zap.Logger
}

// New builds an Executor.
func New(cfg Config, metrics Metrics, logger *zap.Logger) (*Executor, error) {
	if cfg.MaxAttempts < 1 {
		return nil, errors.New("max attempts must be at least 1")
	}
	if metrics == nil {
		return nil, errors.New("retry metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = clock.SleepWithContext
	}
	return &Executor{
		maxAttempts: cfg.MaxAttempts,
		backoff:     backoff,
		sleep:       sleep,
		metrics:     metrics,
		logger:      logger,
	}, nil
}

// MaxAttempts returns the configured number of attempts.
func (e *Executor) MaxAttempts() int {
	return e.maxAttempts
}

// Do calls fn up to MaxAttempts times and returns the first success. Between attempts it
// sleeps backoff*attempt. When attempts run out, or ctx ends during a sleep, it returns a
// *blockchain.Error wrapping the last failure.
func Do[T any](ctx context.Context, e *Executor, op Operation, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		result, err := fn(ctx)
		e.metrics.ObserveAttempt(op.Name, err)
		if err == nil {
			return result, nil
		}
		lastErr = err
		e.logger.Warn("attempt failed",
			zap.String("operation", op.Name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.maxAttempts),
			zap.Error(err),
		)
		if attempt == e.maxAttempts {
			break
		}

		if sleepErr := e.sleep(ctx, clock.LinearBackoff(e.backoff, attempt)); sleepErr != nil {
			e.metrics.ObserveExhausted(op.Name, true)
			return zero, &blockchain.Error{
				Operation:   op.description(),
				MaxAttempts: e.maxAttempts,
				Err:         lastErr,
				Interrupted: sleepErr,
			}
		}
	}

	e.metrics.ObserveExhausted(op.Name, false)
	return zero, &blockchain.Error{
		Operation:   op.description(),
		MaxAttempts: e.maxAttempts,
		Err:         lastErr,
	}
}
