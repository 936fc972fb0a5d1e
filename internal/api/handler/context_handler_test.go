package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"context-service-go/internal/api/handler"
	"context-service-go/internal/api/router"
	"context-service-go/internal/config"
	"context-service-go/internal/processor"
	"context-service-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine 构建注册了全部路由的测试引擎
func newTestEngine(t *testing.T, apiKey string) *server.Hertz {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.APIKey = apiKey

	proc := processor.NewContextProcessor()
	contextHandler := handler.NewContextHandler(cfg, proc, nil)

	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	router.RegisterRoutes(h, cfg, contextHandler)
	return h
}

func performParse(h *server.Hertz, body string, headers ...ut.Header) *ut.ResponseRecorder {
	buf := bytes.NewBufferString(body)
	return ut.PerformRequest(h.Engine, "POST", "/api/v1/parse",
		&ut.Body{Body: buf, Len: buf.Len()},
		append([]ut.Header{{Key: "Content-Type", Value: "application/json"}}, headers...)...,
	)
}

// TestHandleParseSuccess 验证正常请求返回200和完整响应
func TestHandleParseSuccess(t *testing.T) {
	h := newTestEngine(t, "")

	body, _ := json.Marshal(types.ParseRequest{
		SessionID:    "session-1",
		DocumentType: types.DocumentTypeResume,
		DocumentText: "John Doe\njohn.doe@email.com\n",
	})

	resp := performParse(h, string(body))
	require.Equal(t, http.StatusOK, resp.Code)

	var parsed types.ParseResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	assert.Equal(t, "session-1", parsed.SessionID)
	// 字段太少走降级，但HTTP层仍然是200
	assert.Equal(t, types.StatusFallback, parsed.Status)
}

// TestHandleParseFallbackIsStillOK 验证未知文档类型等业务失败不产生非200状态
func TestHandleParseFallbackIsStillOK(t *testing.T) {
	h := newTestEngine(t, "")

	body := `{"session_id":"s-1","document_type":"invoice","document_text":"text"}`
	resp := performParse(h, body)
	require.Equal(t, http.StatusOK, resp.Code)

	var parsed types.ParseResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	assert.Equal(t, types.StatusFallback, parsed.Status)
	require.NotNil(t, parsed.Fallback)
	assert.Contains(t, parsed.Fallback.Reason, "unsupported document type")
}

// TestHandleParseValidation 验证结构非法的请求返回400
func TestHandleParseValidation(t *testing.T) {
	h := newTestEngine(t, "")

	cases := []struct {
		name string
		body string
	}{
		{"非法JSON", `{broken`},
		{"缺少session_id", `{"document_type":"resume","document_text":"x"}`},
		{"缺少document_type", `{"session_id":"s-1","document_text":"x"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := performParse(h, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

// TestHandleParseAuth 验证配置APIKey后解析端点启用Bearer鉴权
// key缺失和key错误都必须稳定返回401，不允许panic
func TestHandleParseAuth(t *testing.T) {
	h := newTestEngine(t, "secret-key")

	body := `{"session_id":"s-1","document_type":"resume","document_text":"x"}`

	noAuth := performParse(h, body)
	assert.Equal(t, http.StatusUnauthorized, noAuth.Code)

	wrongKey := performParse(h, body, ut.Header{Key: "Authorization", Value: "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, wrongKey.Code)
	assert.Contains(t, string(wrongKey.Body.Bytes()), "invalid or missing api key")

	// 错误key连续请求多次，确认中间件不会因空错误崩溃
	wrongAgain := performParse(h, body, ut.Header{Key: "Authorization", Value: "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, wrongAgain.Code)

	rightKey := performParse(h, body, ut.Header{Key: "Authorization", Value: "Bearer secret-key"})
	assert.Equal(t, http.StatusOK, rightKey.Code)
}

// TestHandleRecordsWithoutStorage 验证未配置审计存储时记录查询返回503
func TestHandleRecordsWithoutStorage(t *testing.T) {
	h := newTestEngine(t, "")

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/records?session_id=s-1", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, string(resp.Body.Bytes()), "audit storage is not configured")
}

// TestHandleRecordsRequiresAuth 验证记录查询端点与解析端点受同样的鉴权保护
func TestHandleRecordsRequiresAuth(t *testing.T) {
	h := newTestEngine(t, "secret-key")

	// 记录查询端点与解析端点同组，同样受鉴权保护
	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/records?session_id=s-1", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// TestHandleHealthAndMetricsUnauthenticated 验证健康检查和指标端点不做鉴权
func TestHandleHealthAndMetricsUnauthenticated(t *testing.T) {
	h := newTestEngine(t, "secret-key")

	health := ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, string(health.Body.Bytes()), `"status":"ok"`)

	metrics := ut.PerformRequest(h.Engine, "GET", "/api/v1/metrics", nil)
	require.Equal(t, http.StatusOK, metrics.Code)

	var snapshot processor.MetricsSnapshot
	assert.NoError(t, json.Unmarshal(metrics.Body.Bytes(), &snapshot))
}
