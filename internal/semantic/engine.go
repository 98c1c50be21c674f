// Package semantic 维护语义匹配引擎的进程级生命周期。
// 引擎包装一个嵌入客户端：初始化整个进程只发生一次，
// 失败即永久降级，之后所有请求都走纯关键词路径，绝不逐请求重试。
package semantic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"

	"resume-match-go/internal/logger"
	"resume-match-go/pkg/ratelimit"
)

// ErrEngineUnavailable 引擎不可用。内部哨兵错误，只触发降级，
// 永远不作为请求错误暴露给调用方。
var ErrEngineUnavailable = errors.New("语义引擎不可用")

// State 引擎生命周期状态
type State int32

const (
	// StateUninitialized 尚未初始化
	StateUninitialized State = iota
	// StateLoading 初始化进行中，此间到达的请求直接走关键词路径
	StateLoading
	// StateReady 就绪
	StateReady
	// StateLoadFailed 初始化失败，永久降级
	StateLoadFailed
)

// String 状态的可读名称，健康检查接口会原样输出
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "uninitialized"
	}
}

// EmbedderFactory 构建嵌入客户端的工厂函数，由配置决定具体提供方
type EmbedderFactory func(ctx context.Context) (embedding.Embedder, error)

// Engine 语义引擎。进程内共享一个实例：状态写一次，其后只读。
type Engine struct {
	factory EmbedderFactory
	limiter *ratelimit.TokenBucket

	initOnce    sync.Once
	state       atomic.Int32
	embedder    embedding.Embedder
	initTimeout time.Duration

	// 嵌入向量缓存。技能词在请求间高度重复，缓存避免重复计费调用。
	cacheMu  sync.RWMutex
	cache    map[string][]float64
	cacheCap int

	log zerolog.Logger
}

// Option Engine 的可选配置
type Option func(*Engine)

// WithLimiter 设置嵌入调用限流器
func WithLimiter(limiter *ratelimit.TokenBucket) Option {
	return func(e *Engine) {
		e.limiter = limiter
	}
}

// WithInitTimeout 设置初始化探测的超时
func WithInitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.initTimeout = d
		}
	}
}

// WithCacheCap 设置向量缓存容量上限
func WithCacheCap(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheCap = n
		}
	}
}

// NewEngine 创建引擎。factory 为 nil 表示语义路径被配置关闭，
// 引擎保持 Uninitialized 并永远报告未就绪。
func NewEngine(factory EmbedderFactory, opts ...Option) *Engine {
	e := &Engine{
		factory:     factory,
		initTimeout: 30 * time.Second,
		cache:       make(map[string][]float64),
		cacheCap:    4096,
		log:         logger.Component("semantic"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State 返回当前生命周期状态
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Ready 引擎是否可用于本次请求
func (e *Engine) Ready() bool {
	return e.State() == StateReady
}

// Init 同步初始化。进程内只有第一次调用真正执行，其余调用直接返回
// 当前状态对应的结果。初始化失败是终态。
func (e *Engine) Init(ctx context.Context) error {
	if e.factory == nil {
		return ErrEngineUnavailable
	}

	e.initOnce.Do(func() {
		e.state.Store(int32(StateLoading))
		e.log.Info().Msg("开始初始化语义引擎")

		initCtx, cancel := context.WithTimeout(ctx, e.initTimeout)
		defer cancel()

		embedder, err := e.factory(initCtx)
		if err != nil {
			e.state.Store(int32(StateLoadFailed))
			e.log.Error().Err(err).Msg("语义引擎初始化失败，永久降级到关键词路径")
			return
		}

		// 用一次探测调用验证凭证和连通性，空跑成功才算就绪
		if _, err := embedder.EmbedStrings(initCtx, []string{"warmup probe"}); err != nil {
			e.state.Store(int32(StateLoadFailed))
			e.log.Error().Err(err).Msg("语义引擎探测调用失败，永久降级到关键词路径")
			return
		}

		e.embedder = embedder
		e.state.Store(int32(StateReady))
		e.log.Info().Msg("语义引擎就绪")
	})

	if e.Ready() {
		return nil
	}
	return ErrEngineUnavailable
}

// TriggerInit 异步触发初始化。首个需要语义评分的请求调用它之后
// 继续走关键词路径，不阻塞等待模型加载。
func (e *Engine) TriggerInit() {
	if e.factory == nil || e.State() != StateUninitialized {
		return
	}
	go func() {
		// 后台初始化不绑定请求超时
		_ = e.Init(context.Background())
	}()
}

// MaxSimilarities 对每个 required 技能返回它与 candidate 集合的最大余弦相似度。
// 所有文本合并成一次嵌入调用，命中缓存的不再发请求。
func (e *Engine) MaxSimilarities(ctx context.Context, required, candidate []string) ([]float64, error) {
	if !e.Ready() {
		return nil, ErrEngineUnavailable
	}
	if len(required) == 0 || len(candidate) == 0 {
		return make([]float64, len(required)), nil
	}

	vectors, err := e.embedAll(ctx, append(append([]string{}, required...), candidate...))
	if err != nil {
		return nil, fmt.Errorf("嵌入技能文本失败: %w", err)
	}

	maxima := make([]float64, len(required))
	for i, req := range required {
		reqVec := vectors[req]
		best := 0.0
		for _, cand := range candidate {
			sim := cosineSimilarity(reqVec, vectors[cand])
			if sim > best {
				best = sim
			}
		}
		maxima[i] = best
	}
	return maxima, nil
}

// embedAll 返回每个文本的向量，缓存未命中的部分合并成一次调用
func (e *Engine) embedAll(ctx context.Context, texts []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(texts))
	missing := make([]string, 0, len(texts))

	e.cacheMu.RLock()
	for _, t := range texts {
		if _, dup := out[t]; dup {
			continue
		}
		if vec, ok := e.cache[t]; ok {
			out[t] = vec
		} else {
			out[t] = nil
			missing = append(missing, t)
		}
	}
	e.cacheMu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	var embedded [][]float64
	embed := func() error {
		var err error
		embedded, err = e.embedder.EmbedStrings(ctx, missing)
		return err
	}

	var err error
	if e.limiter != nil {
		err = e.limiter.RetryWithBackoff(ctx, embed)
	} else {
		err = embed()
	}
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missing) {
		return nil, fmt.Errorf("嵌入结果数量不符: 期望 %d 实际 %d", len(missing), len(embedded))
	}

	e.cacheMu.Lock()
	if len(e.cache)+len(missing) > e.cacheCap {
		// 容量到顶直接重建，技能词表体量下几乎不会发生
		e.cache = make(map[string][]float64, e.cacheCap)
	}
	for i, t := range missing {
		e.cache[t] = embedded[i]
		out[t] = embedded[i]
	}
	e.cacheMu.Unlock()

	return out, nil
}

// cosineSimilarity 计算两个向量的余弦相似度，零范数时返回 0
func cosineSimilarity(v1, v2 []float64) float64 {
	if len(v1) == 0 || len(v1) != len(v2) {
		return 0
	}
	var dot, norm1, norm2 float64
	for i := range v1 {
		dot += v1[i] * v2[i]
		norm1 += v1[i] * v1[i]
		norm2 += v2[i] * v2[i]
	}
	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
}
