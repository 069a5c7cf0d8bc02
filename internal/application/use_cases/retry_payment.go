package use_cases

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/retry"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

type RetryPaymentOutput struct {
	Success    bool   `json:"success"`
	Attempt    int    `json:"attempt"`
	MaxRetries int    `json:"maxRetries"`
	BackoffMs  int64  `json:"backoffMs"`
	Key        string `json:"key"`
}

type RetryPaymentUseCase struct {
	coordinator *retry.Coordinator
	logger      *slog.Logger
}

func NewRetryPaymentUseCase(coordinator *retry.Coordinator, logger *slog.Logger) *RetryPaymentUseCase {
	return &RetryPaymentUseCase{coordinator: coordinator, logger: logger}
}

// Execute consumes one retry for key and returns at once. The client waits
// out BackoffMs before paying again.
func (uc *RetryPaymentUseCase) Execute(ctx context.Context, key string) (*RetryPaymentOutput, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.ErrInvalidRequest("retry key is required")
	}

	res := uc.coordinator.Reserve(ctx, key)
	if !res.Success {
		uc.logger.WarnContext(ctx, "payment retry refused", "key", key, "attempt", res.Attempt, "code", res.Error.Code)
		return nil, res.Error
	}

	uc.logger.InfoContext(ctx, "payment retry granted", "key", key, "attempt", res.Attempt)
	return &RetryPaymentOutput{
		Success:    true,
		Attempt:    res.Attempt,
		MaxRetries: uc.coordinator.MaxRetries(),
		BackoffMs:  uc.coordinator.Backoff(res.Attempt).Milliseconds(),
		Key:        key,
	}, nil
}

// Clear forgets the retry history of key after a successful payment.
func (uc *RetryPaymentUseCase) Clear(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.ErrInvalidRequest("retry key is required")
	}
	uc.coordinator.Clear(key)
	uc.logger.DebugContext(ctx, "payment retry state cleared", "key", key)
	return nil
}
