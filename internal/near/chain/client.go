// Package chain guards access to the NEAR node with a shared token bucket and a retry policy.
package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/tta-backend/internal/clock"
	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/internal/near/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Node is the raw node capability being rate limited.
	Node interface {
		ViewAccount(ctx context.Context, account model.AccountID, height uint64) (model.Balance, error)
		CallFunction(ctx context.Context, contract model.AccountID, method string, args []byte) ([]byte, error)
	}
	// Metrics records limiter and retry behaviour.
	Metrics interface {
		ObserveAdmission(waited time.Duration, rejected bool)
		ObserveRetry(operation string)
		ObserveExhausted(operation string)
	}
)

// Options configures the limiter and retry policy.
type Options struct {
	RPS              float64
	Burst            int
	AdmissionTimeout time.Duration
	CallTimeout      time.Duration
	MaxAttempts      int
	BackoffInitial   time.Duration
	BackoffMax       time.Duration
}

// DefaultOptions returns the production limiter and retry settings.
func DefaultOptions() Options {
	return Options{
		RPS:              4,
		Burst:            4,
		AdmissionTimeout: 10 * time.Second,
		CallTimeout:      20 * time.Second,
		MaxAttempts:      5,
		BackoffInitial:   200 * time.Millisecond,
		BackoffMax:       5 * time.Second,
	}
}

// Client is safe for concurrent use; a single instance is shared by all requests.
type Client struct {
	node    Node
	limiter *rate.Limiter
	opts    Options
	metrics Metrics
	logger  *zap.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient constructs a rate limited client around node.
func NewClient(node Node, opts Options, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if node == nil {
		return nil, errors.New("chain node is required")
	}
	if metrics == nil {
		return nil, errors.New("chain metrics is required")
	}
	if logger == nil {
		return nil, errors.New("chain logger is required")
	}
	if opts.RPS <= 0 {
		return nil, fmt.Errorf("rps must be positive, got %v", opts.RPS)
	}
	if opts.Burst <= 0 {
		return nil, fmt.Errorf("burst must be positive, got %d", opts.Burst)
	}
	if opts.MaxAttempts <= 0 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", opts.MaxAttempts)
	}
	if opts.CallTimeout <= 0 {
		return nil, fmt.Errorf("call timeout must be positive, got %s", opts.CallTimeout)
	}

	return &Client{
		node:    node,
		limiter: rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		opts:    opts,
		metrics: metrics,
		logger:  logger.Named("chain"),
		now:     time.Now,
		sleep:   clock.Sleep,
	}, nil
}

// FetchBalance returns the balance of account at height.
// ErrAccountNotFound and ErrBlockNotFound are returned as is and never retried.
func (c *Client) FetchBalance(ctx context.Context, account model.AccountID, height uint64) (model.Balance, error) {
	var balance model.Balance
	err := c.do(ctx, "view_account", func(ctx context.Context) error {
		var err error
		balance, err = c.node.ViewAccount(ctx, account, height)
		return err
	})
	if err != nil {
		return model.Balance{}, err
	}
	return balance, nil
}

// CallFunction runs a contract view method under the same limiter and retry policy.
func (c *Client) CallFunction(ctx context.Context, contract model.AccountID, method string, args []byte) ([]byte, error) {
	var out []byte
	err := c.do(ctx, "call_function", func(ctx context.Context) error {
		var err error
		out, err = c.node.CallFunction(ctx, contract, method, args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	policy := backoff.WithMaxRetries(c.newBackOff(), uint64(c.opts.MaxAttempts-1))

	for attempt := 1; ; attempt++ {
		if err := c.admit(ctx); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, c.opts.CallTimeout)
		err := call(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = classify(err)
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Unwrap()
		}

		next := policy.NextBackOff()
		if next == backoff.Stop {
			c.metrics.ObserveExhausted(operation)
			return fmt.Errorf("%w: %s failed after %d attempts: %w", model.ErrRemoteUnavailable, operation, attempt, err)
		}

		c.metrics.ObserveRetry(operation)
		c.logger.Debug("retrying node call",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", next),
			zap.Error(err),
		)
		if err := c.sleep(ctx, next); err != nil {
			return err
		}
	}
}

// admit takes one token, waiting at most AdmissionTimeout for it.
func (c *Client) admit(ctx context.Context) error {
	now := c.now()
	reservation := c.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		c.metrics.ObserveAdmission(0, true)
		return model.ErrRateLimited
	}

	delay := reservation.DelayFrom(now)
	if c.opts.AdmissionTimeout > 0 && delay > c.opts.AdmissionTimeout {
		reservation.CancelAt(now)
		c.metrics.ObserveAdmission(delay, true)
		return fmt.Errorf("%w: admission would wait %s", model.ErrRateLimited, delay)
	}

	if err := c.sleep(ctx, delay); err != nil {
		reservation.CancelAt(c.now())
		return err
	}
	c.metrics.ObserveAdmission(delay, false)
	return nil
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.BackoffInitial
	b.MaxInterval = c.opts.BackoffMax
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// classify marks outcomes that must not be retried as permanent.
func classify(err error) error {
	switch {
	case errors.Is(err, model.ErrAccountNotFound), errors.Is(err, model.ErrBlockNotFound):
		return backoff.Permanent(err)
	case errors.Is(err, rpc.ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return backoff.Permanent(fmt.Errorf("%w: %w", model.ErrRemoteUnavailable, err))
	}
}
