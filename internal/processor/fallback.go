package processor

import (
	"errors"
	"time"

	"context-service-go/internal/constants"
	"context-service-go/internal/parser"
	"context-service-go/internal/types"
)

// 业务降级原因对应的哨兵错误
// 错误文案会原样出现在降级响应的reason里，修改前需同步下游
var (
	// ErrNoDocumentSource 请求既无内联文本也无URL
	ErrNoDocumentSource = errors.New("no document text or URL provided")

	// ErrUnsupportedDocumentType 未知的文档类型
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
)

// newFallbackResponse 构造降级响应
// raw_text只携带请求中的内联文本，URL解析出的内容不进入降级载荷
// 置信度固定取FallbackConfidence，不使用计算值
func newFallbackResponse(req *types.ParseRequest, reason string, metrics types.ParseMetrics) *types.ParseResponse {
	metrics.Confidence = constants.FallbackConfidence
	metrics.FallbackUsed = true

	return &types.ParseResponse{
		SessionID: req.SessionID,
		Status:    types.StatusFallback,
		Fallback: &types.FallbackContext{
			RawText:       req.DocumentText,
			ExtractedInfo: parser.ExtractContactInfo(req.DocumentText),
			Confidence:    constants.FallbackConfidence,
			Reason:        reason,
		},
		Metrics:   metrics,
		Timestamp: time.Now(),
	}
}
