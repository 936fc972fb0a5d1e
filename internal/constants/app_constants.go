package constants

import "time"

const (
	// ParserVersion 当前提取流水线版本，写入审计记录
	ParserVersion = "heuristic-1.0"

	// ConfidenceThreshold 结构化结果可信的最低置信度，低于该值走降级路径
	ConfidenceThreshold = 0.5
	// ExpectedMaxFields 置信度分母：预期可提取的最大字段数
	ExpectedMaxFields = 50
	// FallbackConfidence 降级结果的固定置信度
	FallbackConfidence = 0.1
	// InsightBonusFields 摘要/职级/优势/行业四个派生字段的固定加成
	InsightBonusFields = 4
)

// Redis Key 前缀和格式常量
// 命名规范沿用 app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ContextModulePrefix 上下文解析模块
	ContextModulePrefix = "context"

	// EntityResponse 解析响应实体
	EntityResponse = "response"

	// KeyParseResponse 解析响应的共享缓存 (STRING, JSON)
	// 格式: app:context:response:{sessionID}:{documentType}:{textLen}
	KeyParseResponse = AppPrefix + ":" + ContextModulePrefix + ":" + EntityResponse + ":%s:%s:%d"

	// ParseResponseCacheTTL 共享缓存的默认过期时间
	ParseResponseCacheTTL = 24 * time.Hour
)

// 消息队列常量
const (
	// ContextEventsExchange 解析事件交换机
	ContextEventsExchange = "context.events"
	// ContextParsedRoutingKey 解析完成事件路由键
	ContextParsedRoutingKey = "context.parsed"
)
