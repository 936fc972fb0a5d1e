package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"context-service-go/internal/config"
	"context-service-go/internal/constants"
	"context-service-go/internal/logger"
	"context-service-go/internal/processor"
	"context-service-go/internal/storage"
	"context-service-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// ContextHandler 解析接口处理器
// 只做请求校验和响应转写，业务结果全部交给编排器
type ContextHandler struct {
	cfg       *config.Config
	processor *processor.ContextProcessor
	store     *storage.Storage // 可选，审计记录查询
}

// NewContextHandler 创建解析接口处理器，store可为nil
func NewContextHandler(cfg *config.Config, proc *processor.ContextProcessor, store *storage.Storage) *ContextHandler {
	return &ContextHandler{
		cfg:       cfg,
		processor: proc,
		store:     store,
	}
}

// HandleParse 处理 POST /parse
// 业务结果（含降级）一律返回200，400只用于结构非法的请求，500只用于内部故障
func (h *ContextHandler) HandleParse(c context.Context, ctx *app.RequestContext) {
	body, err := ctx.Body()
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "failed to read request body"})
		return
	}

	var req types.ParseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}

	if req.SessionID == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "session_id is required"})
		return
	}
	if req.DocumentType == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "document_type is required"})
		return
	}

	resp, err := h.processor.ParseDocument(c, &req)
	if err != nil {
		logger.Error().Err(err).Str("session_id", req.SessionID).Msg("解析请求处理失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "internal server error"})
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

// HandleHealth 处理 GET /health
func (h *ContextHandler) HandleHealth(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, utils.H{
		"status":         "ok",
		"parser_version": constants.ParserVersion,
	})
}

// HandleMetrics 处理 GET /metrics，输出计数器快照
func (h *ContextHandler) HandleMetrics(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.processor.Metrics().Snapshot())
}

// HandleRecords 处理 GET /records，按会话ID查询解析审计记录
// 未配置MySQL时返回503，让调用方能区分"没有记录"和"没开审计"
func (h *ContextHandler) HandleRecords(c context.Context, ctx *app.RequestContext) {
	if h.store == nil || h.store.MySQL == nil {
		ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": "audit storage is not configured"})
		return
	}

	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "session_id is required"})
		return
	}

	limit := 0
	if v := ctx.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	records, err := h.store.MySQL.ListParseRecords(c, sessionID, limit)
	if err != nil {
		logger.Error().Err(err).Str("session_id", sessionID).Msg("查询审计记录失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "internal server error"})
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{
		"session_id": sessionID,
		"count":      len(records),
		"records":    records,
	})
}
