// Package middleware 提供Hertz服务器的通用中间件。
package middleware

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"resume-match-go/internal/logger"
)

// AccessLog 记录每个请求的方法、路径、状态码与耗时。
// 请求ID由业务处理器生成并写入响应头，这里只透传。
func AccessLog() app.HandlerFunc {
	log := logger.Component("http")

	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()

		ctx.Next(c)

		latency := time.Since(start)
		status := ctx.Response.StatusCode()

		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}

		event.
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", status).
			Dur("latency", latency).
			Str("request_id", string(ctx.Response.Header.Peek("X-Request-ID"))).
			Str("client_ip", ctx.ClientIP()).
			Msg("请求完成")
	}
}
