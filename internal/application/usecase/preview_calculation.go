package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
)

const previewCacheTTL = time.Hour

// PreviewCalculationUseCase runs the engine without persisting anything.
// Because the engine is pure, results are cached by an input digest.
type PreviewCalculationUseCase struct {
	cache  port.CalculationCache
	logger *slog.Logger
}

// NewPreviewCalculationUseCase wires dependencies.
func NewPreviewCalculationUseCase(cache port.CalculationCache, logger *slog.Logger) *PreviewCalculationUseCase {
	return &PreviewCalculationUseCase{cache: cache, logger: logger}
}

// Execute computes a preview schedule. Cache failures never fail the
// calculation; they only force a recompute.
func (uc *PreviewCalculationUseCase) Execute(
	ctx context.Context,
	req dto.CalculationRequest,
) (dto.PreviewResponse, error) {
	input, err := inputFromRequest(req)
	if err != nil {
		return dto.PreviewResponse{}, err
	}

	normalized := input.Normalized()
	if err := normalized.Validate(); err != nil {
		return dto.PreviewResponse{}, err
	}

	key := calculationCacheKey(normalized)
	if key != "" {
		if cached, ok, cacheErr := uc.cache.Get(ctx, key); cacheErr == nil && ok {
			return dto.PreviewResponse{
				Schedule:  toScheduleResponses(cached.Entries),
				Summary:   toSummaryResponse(cached.Summary),
				FromCache: true,
			}, nil
		}
	}

	result, err := model.Calculate(normalized)
	if err != nil {
		return dto.PreviewResponse{}, fmt.Errorf("calculate preview: %w", err)
	}

	if key != "" {
		if setErr := uc.cache.Set(ctx, key, result, previewCacheTTL); setErr != nil {
			uc.logger.DebugContext(ctx, "preview cache write failed", "error", setErr)
		}
	}

	return dto.PreviewResponse{
		Schedule: toScheduleResponses(result.Entries),
		Summary:  toSummaryResponse(result.Summary),
	}, nil
}

// calculationCacheKey digests a normalized input into a stable cache key. An
// empty key means the input could not be digested and caching is skipped.
func calculationCacheKey(in model.ProjectionInput) string {
	raw, err := json.Marshal(in)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return "projection:preview:" + hex.EncodeToString(sum[:])
}
