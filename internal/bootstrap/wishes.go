package bootstrap

import (
	"context"

	"github.com/cyberbirth/cyberbirth-backend/config"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"go.uber.org/zap"
)

// NewWishClient wires the Gemini generator when an API key is configured.
// Without one every wish uses the fallback content.
func NewWishClient(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) *wishes.Client {
	opts := wishes.Options{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}

	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, wishes will use fallback content")
		return wishes.NewClient(nil, opts)
	}

	gen, err := wishes.NewGeminiGenerator(ctx, wishes.GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model})
	if err != nil {
		logger.Error("gemini client unavailable, wishes will use fallback content", zap.Error(err))
		return wishes.NewClient(nil, opts)
	}

	logger.Info("gemini wish generator ready", zap.String("model", gen.Model()))
	return wishes.NewClient(gen, opts)
}
