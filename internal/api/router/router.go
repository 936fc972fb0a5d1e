package router

import (
	"context"
	"errors"

	"context-service-go/internal/api/handler"
	"context-service-go/internal/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

// errInvalidAPIKey key不匹配时由校验器返回
// 默认错误处理器会对nil错误解引用，校验失败必须带上非nil错误
var errInvalidAPIKey = errors.New("invalid api key")

// RegisterRoutes 注册 API 路由
// 健康检查和指标端点不做鉴权，解析端点在配置了APIKey时启用Bearer校验
func RegisterRoutes(h *server.Hertz, cfg *config.Config, contextHandler *handler.ContextHandler) {
	api := h.Group("/api/v1")

	api.GET("/health", contextHandler.HandleHealth)
	api.GET("/metrics", contextHandler.HandleMetrics)

	parse := api.Group("/")
	if cfg.Server.APIKey != "" {
		parse.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
			keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
				if key != cfg.Server.APIKey {
					return false, errInvalidAPIKey
				}
				return true, nil
			}),
			// key缺失和key错误统一按401处理
			keyauth.WithErrorHandler(func(ctx context.Context, c *app.RequestContext, err error) {
				c.JSON(consts.StatusUnauthorized, utils.H{"error": "invalid or missing api key"})
				c.Abort()
			}),
		))
	}
	parse.POST("/parse", contextHandler.HandleParse)
	parse.GET("/records", contextHandler.HandleRecords)
}
