package processor

import "sync/atomic"

// Metrics 处理器运行计数器，/metrics端点直接输出快照
type Metrics struct {
	RequestsTotal  atomic.Int64
	CacheHits      atomic.Int64
	SuccessTotal   atomic.Int64
	FallbackTotal  atomic.Int64
	FetchErrors    atomic.Int64
	PersistDropped atomic.Int64
	PersistErrors  atomic.Int64
}

// MetricsSnapshot 计数器的一致性快照
type MetricsSnapshot struct {
	RequestsTotal  int64 `json:"requests_total"`
	CacheHits      int64 `json:"cache_hits"`
	SuccessTotal   int64 `json:"success_total"`
	FallbackTotal  int64 `json:"fallback_total"`
	FetchErrors    int64 `json:"fetch_errors"`
	PersistDropped int64 `json:"persist_dropped"`
	PersistErrors  int64 `json:"persist_errors"`
}

// Snapshot 导出当前计数值
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:  m.RequestsTotal.Load(),
		CacheHits:      m.CacheHits.Load(),
		SuccessTotal:   m.SuccessTotal.Load(),
		FallbackTotal:  m.FallbackTotal.Load(),
		FetchErrors:    m.FetchErrors.Load(),
		PersistDropped: m.PersistDropped.Load(),
		PersistErrors:  m.PersistErrors.Load(),
	}
}
