package processor

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"context-service-go/internal/constants"
	"context-service-go/internal/fetcher"
	"context-service-go/internal/logger"
	"context-service-go/internal/parser"
	"context-service-go/internal/storage"
	"context-service-go/internal/tracing"
	"context-service-go/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 定义tracer
var tracer = otel.Tracer("context-service-go/processor")

// ContextProcessor 解析请求的编排器
// 串起缓存查询、文档获取、提取流水线、置信度闸门和异步持久化
type ContextProcessor struct {
	parser    *parser.ResumeParser
	fetcher   fetcher.DocumentFetcher
	cache     *ResponseCache
	redis     *storage.Redis // 可选，二级共享缓存
	persister *Persister     // 可选，成功响应异步持久化
	metrics   *Metrics
}

// NewContextProcessor 创建编排器，未注入的组件使用内置默认实现
func NewContextProcessor(opts ...Option) *ContextProcessor {
	p := &ContextProcessor{
		metrics: &Metrics{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.parser == nil {
		p.parser = parser.NewResumeParser(nil)
	}
	if p.fetcher == nil {
		p.fetcher = fetcher.NewHTTPFetcher()
	}
	if p.cache == nil {
		p.cache = NewResponseCache(0, 0)
	}
	return p
}

// Metrics 返回处理器的运行计数器
func (p *ContextProcessor) Metrics() *Metrics {
	return p.metrics
}

// Cache 返回进程内响应缓存
func (p *ContextProcessor) Cache() *ResponseCache {
	return p.cache
}

// ParseDocument 处理一次解析请求
// 所有业务结果（含降级）都作为正常响应返回，error只在请求取消或内部故障时出现
func (p *ContextProcessor) ParseDocument(ctx context.Context, req *types.ParseRequest) (*types.ParseResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("解析请求不能为空")
	}

	ctx, span := tracer.Start(ctx, "ContextProcessor.ParseDocument",
		trace.WithAttributes(
			attribute.String("request.session_id", req.SessionID),
			attribute.String("request.document_type", string(req.DocumentType)),
		),
	)
	defer span.End()

	p.metrics.RequestsTotal.Add(1)
	start := time.Now()

	// 缓存key取请求内联文本的长度，URL请求固定为0
	// 同长度不同内容的文本会撞key，属已知弱点，保持现状
	cacheKey := storage.ResponseCacheKey(req.SessionID, req.DocumentType, utf8.RuneCountInString(req.DocumentText))

	if resp, ok := p.lookupCache(ctx, cacheKey); ok {
		p.metrics.CacheHits.Add(1)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return resp, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	// 文档获取：优先内联文本，其次URL引用
	text, size, fetchDuration, err := p.acquire(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.metrics.FetchErrors.Add(1)
		pm := types.ParseMetrics{
			FetchDurationMs: fetchDuration.Milliseconds(),
			TotalDurationMs: time.Since(start).Milliseconds(),
		}
		return p.fallback(span, req, err.Error(), pm), nil
	}

	parseStart := time.Now()
	structured, fields, confidence, err := p.runPipeline(ctx, req.DocumentType, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		pm := types.ParseMetrics{
			FetchDurationMs: fetchDuration.Milliseconds(),
			ParseDurationMs: time.Since(parseStart).Milliseconds(),
			TotalDurationMs: time.Since(start).Milliseconds(),
			DocumentSize:    size,
		}
		return p.fallback(span, req, err.Error(), pm), nil
	}

	pm := types.ParseMetrics{
		FetchDurationMs: fetchDuration.Milliseconds(),
		ParseDurationMs: time.Since(parseStart).Milliseconds(),
		DocumentSize:    size,
		FieldsExtracted: fields,
		Confidence:      confidence,
	}

	span.SetAttributes(
		attribute.Int("parse.fields_extracted", fields),
		attribute.Float64("parse.confidence", confidence),
	)

	// 置信度闸门：低于阈值不信任结构化结果
	if confidence < constants.ConfidenceThreshold {
		reason := fmt.Sprintf("confidence %.2f below threshold %.2f", confidence, constants.ConfidenceThreshold)
		pm.TotalDurationMs = time.Since(start).Milliseconds()
		return p.fallback(span, req, reason, pm), nil
	}

	pm.TotalDurationMs = time.Since(start).Milliseconds()
	resp := &types.ParseResponse{
		SessionID:  req.SessionID,
		Status:     types.StatusSuccess,
		Structured: structured,
		Metrics:    pm,
		Timestamp:  time.Now(),
	}

	// 成功路径才写缓存和持久化
	p.storeCache(ctx, cacheKey, resp)
	if p.persister != nil {
		p.persister.Enqueue(PersistJob{
			Response:     resp,
			DocumentType: req.DocumentType,
			RawText:      text,
		})
	}

	p.metrics.SuccessTotal.Add(1)
	span.SetAttributes(attribute.String("parse.status", string(types.StatusSuccess)))
	return resp, nil
}

// acquire 把请求解析为文档文本
// 大小统一按字符数计
func (p *ContextProcessor) acquire(ctx context.Context, req *types.ParseRequest) (string, int, time.Duration, error) {
	if req.DocumentText != "" {
		return req.DocumentText, utf8.RuneCountInString(req.DocumentText), 0, nil
	}

	if req.DocumentURL != "" {
		fetchStart := time.Now()
		text, size, err := p.fetcher.Resolve(ctx, req.DocumentURL)
		fetchDuration := time.Since(fetchStart)
		if err != nil {
			return "", 0, fetchDuration, fmt.Errorf("failed to fetch document: %w", err)
		}
		return text, size, fetchDuration, nil
	}

	return "", 0, 0, ErrNoDocumentSource
}

// runPipeline 按文档类型执行提取流水线，返回结构化结果、字段数和置信度
func (p *ContextProcessor) runPipeline(ctx context.Context, docType types.DocumentType, text string) (*types.StructuredContext, int, float64, error) {
	switch docType {
	case types.DocumentTypeResume:
		structured, fields, err := p.parser.Parse(ctx, text)
		if err != nil {
			return nil, 0, 0, err
		}
		confidence := float64(fields) / float64(constants.ExpectedMaxFields)
		if confidence > 1.0 {
			confidence = 1.0
		}
		return structured, fields, confidence, nil

	case types.DocumentTypeJobDescription:
		// 占位实现：固定1个字段、0.5置信度，恰好过闸门
		structured, fields := parser.ParseJobDescription(text)
		return structured, fields, 0.5, nil

	default:
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedDocumentType, docType)
	}
}

// fallback 构造降级响应并记录相关指标
func (p *ContextProcessor) fallback(span trace.Span, req *types.ParseRequest, reason string, pm types.ParseMetrics) *types.ParseResponse {
	p.metrics.FallbackTotal.Add(1)
	tracing.RecordFallback(span, reason, constants.FallbackConfidence)
	return newFallbackResponse(req, reason, pm)
}

// lookupCache 查询本地缓存，未命中时查二级共享缓存
// 命中返回副本并置cache_hit，原始时间戳保持不变
func (p *ContextProcessor) lookupCache(ctx context.Context, key string) (*types.ParseResponse, bool) {
	if cached, ok := p.cache.Get(key); ok {
		hit := *cached
		hit.Metrics.CacheHit = true
		return &hit, true
	}

	if p.redis != nil {
		cached, err := p.redis.GetCachedParseResponse(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("key", tracing.SafeRedisKey(key)).Msg("读取共享缓存失败")
		} else if cached != nil {
			// 回填本地缓存，后续请求不再走Redis
			p.cache.Add(key, cached)
			hit := *cached
			hit.Metrics.CacheHit = true
			return &hit, true
		}
	}

	return nil, false
}

// storeCache 写本地缓存，配置了Redis时同步写共享缓存
func (p *ContextProcessor) storeCache(ctx context.Context, key string, resp *types.ParseResponse) {
	p.cache.Add(key, resp)

	if p.redis != nil {
		if err := p.redis.CacheParseResponse(ctx, key, resp); err != nil {
			logger.Warn().Err(err).Str("key", tracing.SafeRedisKey(key)).Msg("写入共享缓存失败")
		}
	}
}
