package processor

import (
	"time"

	"context-service-go/internal/types"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ResponseCache 进程内的成功响应缓存
// 带容量上限和TTL过期，可安全并发使用
type ResponseCache struct {
	lru *expirable.LRU[string, *types.ParseResponse]
}

// NewResponseCache 创建响应缓存
func NewResponseCache(capacity int, ttl time.Duration) *ResponseCache {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResponseCache{
		lru: expirable.NewLRU[string, *types.ParseResponse](capacity, nil, ttl),
	}
}

// Get 按key查询缓存的响应
func (c *ResponseCache) Get(key string) (*types.ParseResponse, bool) {
	return c.lru.Get(key)
}

// Add 写入一条响应
func (c *ResponseCache) Add(key string, resp *types.ParseResponse) {
	c.lru.Add(key, resp)
}

// Len 返回当前缓存条目数
func (c *ResponseCache) Len() int {
	return c.lru.Len()
}

// Purge 清空缓存，测试用
func (c *ResponseCache) Purge() {
	c.lru.Purge()
}
