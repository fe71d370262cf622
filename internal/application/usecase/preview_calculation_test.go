package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terravista/projection-service/internal/domain/model"
)

func TestPreviewCalculationUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches on a miss", func(t *testing.T) {
		cache := &mockCalculationCache{}
		uc := NewPreviewCalculationUseCase(cache, slog.New(slog.DiscardHandler))

		resp, err := uc.Execute(ctx, validCalculationRequest())
		require.NoError(t, err)

		assert.False(t, resp.FromCache)
		assert.Len(t, resp.Schedule, 101)
		assert.True(t, resp.Summary.FinancedAmount.Equal(decimal.NewFromInt(450000)))
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("serves a hit from the cache", func(t *testing.T) {
		input, err := inputFromRequest(validCalculationRequest())
		require.NoError(t, err)
		cached, err := model.Calculate(input)
		require.NoError(t, err)

		cache := &mockCalculationCache{
			getFunc: func(ctx context.Context, key string) (model.CalculationResult, bool, error) {
				return cached, true, nil
			},
		}
		uc := NewPreviewCalculationUseCase(cache, slog.New(slog.DiscardHandler))

		resp, err := uc.Execute(ctx, validCalculationRequest())
		require.NoError(t, err)

		assert.True(t, resp.FromCache)
		assert.Len(t, resp.Schedule, 101)
		assert.Equal(t, 0, cache.setCalls)
	})

	t.Run("cache read failure falls back to computing", func(t *testing.T) {
		cache := &mockCalculationCache{
			getFunc: func(ctx context.Context, key string) (model.CalculationResult, bool, error) {
				return model.CalculationResult{}, false, errors.New("redis down")
			},
		}
		uc := NewPreviewCalculationUseCase(cache, slog.New(slog.DiscardHandler))

		resp, err := uc.Execute(ctx, validCalculationRequest())
		require.NoError(t, err)
		assert.False(t, resp.FromCache)
		assert.Len(t, resp.Schedule, 101)
	})

	t.Run("cache write failure is logged and ignored", func(t *testing.T) {
		cache := &mockCalculationCache{
			setFunc: func(ctx context.Context, key string, result model.CalculationResult, ttl time.Duration) error {
				return errors.New("redis down")
			},
		}
		var logBuf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		uc := NewPreviewCalculationUseCase(cache, logger)

		resp, err := uc.Execute(ctx, validCalculationRequest())
		require.NoError(t, err)
		assert.Len(t, resp.Schedule, 101)
		assert.Contains(t, logBuf.String(), "preview cache write failed")
		assert.Contains(t, logBuf.String(), "redis down")
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		cache := &mockCalculationCache{}
		uc := NewPreviewCalculationUseCase(cache, slog.New(slog.DiscardHandler))

		req := validCalculationRequest()
		req.PropertyPrice = decimal.Zero

		_, err := uc.Execute(ctx, req)
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, 0, cache.setCalls)
	})
}

func TestCalculationCacheKey(t *testing.T) {
	a, err := inputFromRequest(validCalculationRequest())
	require.NoError(t, err)
	b, err := inputFromRequest(validCalculationRequest())
	require.NoError(t, err)

	t.Run("stable for identical inputs", func(t *testing.T) {
		assert.Equal(t, calculationCacheKey(a.Normalized()), calculationCacheKey(b.Normalized()))
	})

	t.Run("changes with the input", func(t *testing.T) {
		c := a
		c.KeysPayment = decimal.NewFromInt(1)
		assert.NotEqual(t, calculationCacheKey(a.Normalized()), calculationCacheKey(c.Normalized()))
	})

	t.Run("prefixed for the preview namespace", func(t *testing.T) {
		key := calculationCacheKey(a.Normalized())
		assert.NotEmpty(t, key)
		assert.Contains(t, key, "projection:preview:")
	})
}
