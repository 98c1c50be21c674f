// Package ratelimit 提供嵌入服务调用的客户端限流。
// 嵌入提供方按 QPM 计费并在超额时返回 429，令牌桶把突发的匹配请求
// 平滑到配额之内，配合退避重试吸收偶发的限流错误。
package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// TokenBucket 令牌桶限流器。按 QPM 匀速放行，允许不超过桶容量的突发。
type TokenBucket struct {
	mu        sync.Mutex
	rate      float64   // 每秒补充的令牌数
	burst     float64   // 桶容量，即允许的突发量
	available float64   // 当前可用令牌
	last      time.Time // 上次补充时间

	retryWait  time.Duration // 首次重试的退避基准
	maxRetries int
}

// NewTokenBucket 创建限流器。qpm 为每分钟配额；capacity 是突发容量，
// 传 0 或负数时取配额的一半（至少 1）。
func NewTokenBucket(qpm int, capacity int) *TokenBucket {
	if capacity <= 0 {
		capacity = qpm / 2
		if capacity <= 0 {
			capacity = 1
		}
	}
	return &TokenBucket{
		rate:       float64(qpm) / 60.0,
		burst:      float64(capacity),
		available:  float64(capacity),
		last:       time.Now(),
		retryWait:  time.Second,
		maxRetries: 3,
	}
}

// WithRetryPolicy 调整退避基准与最大重试次数，返回自身便于链式构造
func (tb *TokenBucket) WithRetryPolicy(wait time.Duration, maxRetries int) *TokenBucket {
	tb.retryWait = wait
	tb.maxRetries = maxRetries
	return tb
}

// refillLocked 按经过的时间补充令牌，调用方必须持有锁
func (tb *TokenBucket) refillLocked() {
	now := time.Now()
	tb.available += now.Sub(tb.last).Seconds() * tb.rate
	if tb.available > tb.burst {
		tb.available = tb.burst
	}
	tb.last = now
}

// Allow 尝试立即取走一个令牌，无令牌时返回 false 而不等待
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked()
	if tb.available < 1.0 {
		return false
	}
	tb.available -= 1.0
	return true
}

// Wait 阻塞到取得一个令牌，或 ctx 结束
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		tb.refillLocked()
		if tb.available >= 1.0 {
			tb.available -= 1.0
			tb.mu.Unlock()
			return nil
		}
		// 缺口除以速率即最早可取到令牌的时刻
		sleep := time.Duration((1.0 - tb.available) / tb.rate * float64(time.Second))
		tb.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// RetryWithBackoff 在限流器的节奏下执行 fn，对可重试错误做指数退避。
// 每次尝试（包括重试）都先取令牌，4xx 一类的确定性错误立即返回。
func (tb *TokenBucket) RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= tb.maxRetries; attempt++ {
		if err = tb.Wait(ctx); err != nil {
			return err
		}

		if err = fn(); err == nil {
			return nil
		}
		if !isRetryableError(err) || attempt == tb.maxRetries {
			return err
		}

		backoff := tb.retryWait * time.Duration(1<<uint(attempt))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}

// retryableMarkers 嵌入提供方限流/抖动类错误的特征片段。
// 提供方 SDK 没有统一的错误类型，只能按消息内容识别。
var retryableMarkers = []string{
	"timeout",
	"deadline exceeded",
	"connection reset",
	"connection refused",
	"eof",
	"429",
	"too many requests",
	"rate limit",
	"服务器繁忙",
	"请求超过限额",
	"qps限制",
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
