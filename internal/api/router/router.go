package router

import (
	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/middleware"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, matchHandler *handler.MatchHandler) {
	h.Use(middleware.AccessLog())

	api := h.Group("/api/v1")

	// 简历与职位描述匹配
	api.POST("/match", matchHandler.HandleMatch)

	// 健康检查，附带语义引擎状态
	api.GET("/health", matchHandler.HandleHealth)
}
