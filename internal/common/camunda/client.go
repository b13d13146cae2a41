// Package camunda connects to the Zeebe gateway and registers job workers.
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourist-guide/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// ClientConfig holds configuration for the Zeebe client.
type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	RequestTimeout         time.Duration
	Retry                  RetryConfig
}

// RetryConfig defines backoff for transient gateway failures.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 10,
	BaseDelay:   2 * time.Second,
	MaxDelay:    30 * time.Second,
}

// Connect creates a Zeebe client and waits until the gateway answers a
// topology request, retrying transient failures with exponential backoff.
func Connect(ctx context.Context, cfg ClientConfig, log logger.Logger) (zbc.Client, error) {
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	client, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	err = Retry(ctx, cfg.Retry, "Zeebe gateway connection", log, func(ctx context.Context) error {
		return HealthCheck(ctx, client, cfg.RequestTimeout)
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info("Zeebe client connected", map[string]interface{}{"gateway": cfg.GatewayAddress})
	return client, nil
}

// HealthCheck sends a topology request to the gateway.
func HealthCheck(ctx context.Context, client zbc.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// Retry runs op until it succeeds, fails with a non-transient error, the
// attempts run out or ctx is done.
func Retry(ctx context.Context, cfg RetryConfig, operationName string, log logger.Logger, op func(context.Context) error) error {
	var lastErr error
	delay := cfg.BaseDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsRetryableError(lastErr) || attempt == cfg.MaxAttempts {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
			"error":       lastErr.Error(),
			"attempt":     attempt,
			"maxAttempts": cfg.MaxAttempts,
			"nextRetryIn": delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, attempt, ctx.Err())
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s failed: %w", operationName, lastErr)
}

var retryablePhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
}

// IsRetryableError checks if a gateway error is transient.
func IsRetryableError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range retryablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
