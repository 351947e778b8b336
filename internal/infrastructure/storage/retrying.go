package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"atlas-cms/internal/domain/retry"
	"atlas-cms/internal/utils/platformerrors"
)

// RetryingClient wraps a Client with per-attempt timeouts and a retry
// policy on Save. Deletes pass through: compensation handles its own
// best-effort semantics and must not stack retries.
type RetryingClient struct {
	inner          Client
	policy         retry.Policy
	attemptTimeout time.Duration
	log            zerolog.Logger
}

func NewRetryingClient(inner Client, policy retry.Policy, attemptTimeout time.Duration, log zerolog.Logger) *RetryingClient {
	return &RetryingClient{
		inner:          inner,
		policy:         policy,
		attemptTimeout: attemptTimeout,
		log:            log.With().Str("component", "retrying-storage").Logger(),
	}
}

func (c *RetryingClient) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	var url string
	err := retry.Execute(ctx, c.policy, func(ctx context.Context, attempt int) error {
		attemptCtx := ctx
		if c.attemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
			defer cancel()
		}

		var err error
		url, err = c.inner.Save(attemptCtx, key, data, contentType)
		if err != nil {
			c.log.Warn().
				Err(err).
				Str("key", key).
				Int("attempt", attempt).
				Int("max_attempts", c.policy.MaxAttempts).
				Msg("storage write attempt failed")
		}
		return err
	})
	if err != nil {
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeStorageWrite, "storage write failed after retries", err,
			"f2c48ad1-67e0-4b93-8d52-1a9c36e07bd4",
			map[string]any{"key": key, "attempts": c.policy.MaxAttempts})
	}
	return url, nil
}

func (c *RetryingClient) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *RetryingClient) URL(key string) string {
	return c.inner.URL(key)
}

func (c *RetryingClient) Health(ctx context.Context) error {
	return c.inner.Health(ctx)
}
