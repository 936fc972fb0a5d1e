package processor

import (
	"context-service-go/internal/fetcher"
	"context-service-go/internal/parser"
	"context-service-go/internal/storage"
)

// Option 编排器配置选项
type Option func(*ContextProcessor)

// WithParser 注入简历提取器
func WithParser(rp *parser.ResumeParser) Option {
	return func(p *ContextProcessor) {
		p.parser = rp
	}
}

// WithFetcher 注入文档获取器
func WithFetcher(f fetcher.DocumentFetcher) Option {
	return func(p *ContextProcessor) {
		p.fetcher = f
	}
}

// WithCache 注入进程内响应缓存
func WithCache(c *ResponseCache) Option {
	return func(p *ContextProcessor) {
		p.cache = c
	}
}

// WithRedis 注入二级共享缓存，nil时只用本地缓存
func WithRedis(r *storage.Redis) Option {
	return func(p *ContextProcessor) {
		p.redis = r
	}
}

// WithPersister 注入异步持久化器，nil时跳过持久化
func WithPersister(ps *Persister) Option {
	return func(p *ContextProcessor) {
		p.persister = ps
	}
}
