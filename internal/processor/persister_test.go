package processor

import (
	"encoding/json"
	"testing"
	"time"

	"context-service-go/internal/constants"
	"context-service-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPersisterEnqueueDropsWhenFull 验证队列满时丢弃任务并计数
func TestPersisterEnqueueDropsWhenFull(t *testing.T) {
	metrics := &Metrics{}
	// 无消费协程的零容量队列，入队必然走丢弃分支
	p := &Persister{
		queue:   make(chan PersistJob),
		metrics: metrics,
	}

	p.Enqueue(PersistJob{Response: &types.ParseResponse{SessionID: "s-1"}})

	assert.Equal(t, int64(1), metrics.PersistDropped.Load())
}

// TestPersisterCloseDrainsQueue 验证Close排空队列且可重复调用
func TestPersisterCloseDrainsQueue(t *testing.T) {
	p := NewPersister(nil, &Metrics{}, 4, 2)

	for i := 0; i < 4; i++ {
		p.Enqueue(PersistJob{
			Response: &types.ParseResponse{
				SessionID: "s-close",
				Status:    types.StatusSuccess,
				Timestamp: time.Now(),
			},
			DocumentType: types.DocumentTypeResume,
		})
	}

	p.Close()
	p.Close() // 重复关闭不应panic
}

// TestPersisterBuildRecord 验证审计记录的字段组装
func TestPersisterBuildRecord(t *testing.T) {
	p := &Persister{}
	parsedAt := time.Now()

	job := PersistJob{
		Response: &types.ParseResponse{
			SessionID: "s-record",
			Status:    types.StatusSuccess,
			Structured: &types.StructuredContext{
				Summary:     "Experienced professional.",
				CareerLevel: "Senior",
			},
			Metrics: types.ParseMetrics{
				Confidence:      0.92,
				FieldsExtracted: 46,
				DocumentSize:    800,
			},
			Timestamp: parsedAt,
		},
		DocumentType: types.DocumentTypeResume,
		RawText:      "raw resume text",
	}

	record, err := p.buildRecord(job, "contexts/s-record/123.json")
	require.NoError(t, err)

	assert.NotEmpty(t, record.RecordUUID)
	assert.Equal(t, "s-record", record.SessionID)
	assert.Equal(t, "resume", record.DocumentType)
	assert.Equal(t, "success", record.Status)
	assert.Equal(t, 0.92, record.Confidence)
	assert.Equal(t, 46, record.FieldsExtracted)
	assert.Equal(t, 800, record.DocumentSize)
	assert.Len(t, record.RawTextMD5, 32)
	assert.Equal(t, "contexts/s-record/123.json", record.ArchivePathOSS)
	assert.Equal(t, constants.ParserVersion, record.ParserVersion)
	assert.Equal(t, parsedAt, record.ParsedAt)

	var stored types.StructuredContext
	require.NoError(t, json.Unmarshal(record.ContextJSON, &stored))
	assert.Equal(t, "Senior", stored.CareerLevel)
}

// TestPersisterBuildRecordWithoutRawText 验证无原文时不写内容指纹
func TestPersisterBuildRecordWithoutRawText(t *testing.T) {
	p := &Persister{}

	record, err := p.buildRecord(PersistJob{
		Response: &types.ParseResponse{
			SessionID: "s-nohash",
			Status:    types.StatusSuccess,
			Timestamp: time.Now(),
		},
		DocumentType: types.DocumentTypeJobDescription,
	}, "")
	require.NoError(t, err)

	assert.Empty(t, record.RawTextMD5)
	assert.Empty(t, record.ArchivePathOSS)
	assert.Empty(t, []byte(record.ContextJSON))
}
