package processor

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"context-service-go/internal/constants"
	"context-service-go/internal/logger"
	"context-service-go/internal/storage"
	"context-service-go/internal/storage/models"
	"context-service-go/internal/types"
	"context-service-go/pkg/utils"

	"github.com/gofrs/uuid/v5"
	googleuuid "github.com/google/uuid"
	"gorm.io/datatypes"
)

// persistJobTimeout 单个持久化任务的总时限
const persistJobTimeout = 30 * time.Second

// PersistJob 一条待持久化的成功响应
// RawText用于计算审计记录的内容指纹，不落库原文
type PersistJob struct {
	Response     *types.ParseResponse
	DocumentType types.DocumentType
	RawText      string
}

// ContextParsedEvent 解析完成事件载荷，发布到context.events交换机
type ContextParsedEvent struct {
	EventID         string    `json:"event_id"`
	SessionID       string    `json:"session_id"`
	DocumentType    string    `json:"document_type"`
	Status          string    `json:"status"`
	Confidence      float64   `json:"confidence"`
	FieldsExtracted int       `json:"fields_extracted"`
	ParsedAt        time.Time `json:"parsed_at"`
}

// Persister 成功响应的异步持久化器
// 请求路径只入队，归档/落库/发事件都在后台工作协程完成
// 队列满时丢弃任务并告警，持久化失败不影响已返回的响应
type Persister struct {
	store   *storage.Storage
	metrics *Metrics

	exchange   string
	routingKey string

	queue chan PersistJob
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewPersister 创建并启动异步持久化器
func NewPersister(store *storage.Storage, metrics *Metrics, queueSize, workers int) *Persister {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}

	p := &Persister{
		store:      store,
		metrics:    metrics,
		exchange:   constants.ContextEventsExchange,
		routingKey: constants.ContextParsedRoutingKey,
		queue:      make(chan PersistJob, queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// SetRouting 覆盖事件交换机和路由键，启动前调用
func (p *Persister) SetRouting(exchange, routingKey string) {
	if exchange != "" {
		p.exchange = exchange
	}
	if routingKey != "" {
		p.routingKey = routingKey
	}
}

// Enqueue 提交一条持久化任务，队列满时直接丢弃
func (p *Persister) Enqueue(job PersistJob) {
	select {
	case p.queue <- job:
	default:
		if p.metrics != nil {
			p.metrics.PersistDropped.Add(1)
		}
		logger.Warn().
			Str("session_id", job.Response.SessionID).
			Msg("持久化队列已满，丢弃任务")
	}
}

// Close 停止接收新任务并等待队列排空
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}

// run 工作协程主循环
func (p *Persister) run() {
	defer p.wg.Done()
	for job := range p.queue {
		p.persist(job)
	}
}

// persist 执行单条任务的全部持久化动作
// 各动作相互独立，单个失败只记错误计数，不中断后续动作
func (p *Persister) persist(job PersistJob) {
	ctx, cancel := context.WithTimeout(context.Background(), persistJobTimeout)
	defer cancel()

	resp := job.Response
	payload, err := json.Marshal(resp)
	if err != nil {
		p.recordError(err, resp.SessionID, "序列化响应失败")
		return
	}

	// 归档在落库之前，审计记录里要带归档对象路径
	var archivePath string
	if p.store != nil && p.store.MinIO != nil {
		archivePath, err = p.store.MinIO.ArchiveParseResponse(ctx, resp.SessionID, resp.Timestamp, payload)
		if err != nil {
			p.recordError(err, resp.SessionID, "归档解析响应失败")
		}
	}

	if p.store != nil && p.store.MySQL != nil {
		if record, buildErr := p.buildRecord(job, archivePath); buildErr != nil {
			p.recordError(buildErr, resp.SessionID, "构建审计记录失败")
		} else if saveErr := p.store.MySQL.SaveParseRecord(ctx, record); saveErr != nil {
			p.recordError(saveErr, resp.SessionID, "写入审计记录失败")
		}
	}

	if p.store != nil && p.store.RabbitMQ != nil {
		event := ContextParsedEvent{
			EventID:         googleuuid.NewString(),
			SessionID:       resp.SessionID,
			DocumentType:    string(job.DocumentType),
			Status:          string(resp.Status),
			Confidence:      resp.Metrics.Confidence,
			FieldsExtracted: resp.Metrics.FieldsExtracted,
			ParsedAt:        resp.Timestamp,
		}
		if pubErr := p.store.RabbitMQ.PublishJSON(ctx, p.exchange, p.routingKey, event, true); pubErr != nil {
			p.recordError(pubErr, resp.SessionID, "发布解析完成事件失败")
		}
	}
}

// buildRecord 组装审计记录
func (p *Persister) buildRecord(job PersistJob, archivePath string) (*models.ParseRecord, error) {
	resp := job.Response

	recordID, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	var contextJSON datatypes.JSON
	if resp.Structured != nil {
		data, marshalErr := json.Marshal(resp.Structured)
		if marshalErr != nil {
			return nil, marshalErr
		}
		contextJSON = datatypes.JSON(data)
	}

	var rawTextMD5 string
	if job.RawText != "" {
		rawTextMD5 = utils.CalculateMD5([]byte(job.RawText))
	}

	return &models.ParseRecord{
		RecordUUID:      recordID.String(),
		SessionID:       resp.SessionID,
		DocumentType:    string(job.DocumentType),
		Status:          string(resp.Status),
		Confidence:      resp.Metrics.Confidence,
		FieldsExtracted: resp.Metrics.FieldsExtracted,
		DocumentSize:    resp.Metrics.DocumentSize,
		RawTextMD5:      rawTextMD5,
		ContextJSON:     contextJSON,
		ArchivePathOSS:  archivePath,
		ParserVersion:   constants.ParserVersion,
		ParsedAt:        resp.Timestamp,
	}, nil
}

// recordError 统一的持久化错误记录
func (p *Persister) recordError(err error, sessionID, msg string) {
	if p.metrics != nil {
		p.metrics.PersistErrors.Add(1)
	}
	logger.Error().Err(err).Str("session_id", sessionID).Msg(msg)
}
