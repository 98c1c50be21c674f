package semantic

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/embedding"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/pkg/ratelimit"
)

// NewFactoryFromConfig 根据配置选择嵌入提供方。语义匹配被关闭
// 或密钥缺失时返回 nil，引擎将保持未初始化并永远走关键词路径。
func NewFactoryFromConfig(cfg *config.Config) EmbedderFactory {
	if cfg == nil || !cfg.Semantic.Enabled {
		return nil
	}
	provider := cfg.EmbeddingProvider()
	if provider.APIKey == "" {
		logger.Warn().Str("provider", cfg.Semantic.Provider).
			Msg("语义匹配已启用但未配置API密钥，回退到关键词路径")
		return nil
	}

	switch cfg.Semantic.Provider {
	case "openai":
		return func(ctx context.Context) (embedding.Embedder, error) {
			return NewOpenAIEmbedder(provider)
		}
	default:
		return func(ctx context.Context) (embedding.Embedder, error) {
			return NewDashScopeEmbedder(provider)
		}
	}
}

// NewEngineFromConfig 根据配置组装引擎，包含限流与重试策略
func NewEngineFromConfig(cfg *config.Config) *Engine {
	factory := NewFactoryFromConfig(cfg)

	var opts []Option
	if cfg != nil && cfg.Semantic.QPM > 0 {
		limiter := ratelimit.NewTokenBucket(cfg.Semantic.QPM, cfg.Semantic.QPM)
		if cfg.Semantic.MaxRetries > 0 {
			wait := time.Duration(cfg.Semantic.RetryWaitSeconds) * time.Second
			if wait <= 0 {
				wait = time.Second
			}
			limiter = limiter.WithRetryPolicy(wait, cfg.Semantic.MaxRetries)
		}
		opts = append(opts, WithLimiter(limiter))
	}

	return NewEngine(factory, opts...)
}
