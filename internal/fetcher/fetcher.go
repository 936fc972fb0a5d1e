package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"context-service-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var fetchTracer = otel.Tracer("context-service-go/fetcher")

// DocumentFetcher 把外部引用解析为文本的能力接口
type DocumentFetcher interface {
	// Resolve 解析URL引用，返回文本内容和字符数
	Resolve(ctx context.Context, url string) (string, int, error)
}

// ObjectTextLoader 对象存储文本读取能力，minio://引用走这里
type ObjectTextLoader interface {
	GetObjectText(ctx context.Context, objectKey string) (string, error)
}

// HTTPFetcher 基于HTTP的文档获取器
// minio://前缀的引用委托给注入的对象存储读取器
type HTTPFetcher struct {
	client       *http.Client
	maxBodyBytes int64
	objectLoader ObjectTextLoader // 可选
}

// Option HTTPFetcher配置选项
type Option func(*HTTPFetcher)

// WithTimeout 设置HTTP请求超时
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithMaxBodyBytes 设置响应体大小上限
func WithMaxBodyBytes(n int64) Option {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// WithObjectLoader 注入对象存储读取器，启用minio://引用
func WithObjectLoader(loader ObjectTextLoader) Option {
	return func(f *HTTPFetcher) {
		f.objectLoader = loader
	}
}

// NewHTTPFetcher 创建文档获取器
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:       &http.Client{Timeout: 10 * time.Second},
		maxBodyBytes: 4 << 20,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolve 解析文档引用为文本
// 大小按字符数计，与内联文本的度量口径保持一致
func (f *HTTPFetcher) Resolve(ctx context.Context, url string) (string, int, error) {
	ctx, span := fetchTracer.Start(ctx, "HTTPFetcher.Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("fetch.url", tracing.TruncateString(url, tracing.DefaultMaxLength)))

	var (
		text   string
		err    error
		scheme string
	)
	switch {
	case strings.HasPrefix(url, "minio://"):
		scheme = "minio"
		text, err = f.resolveObject(ctx, url)
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		scheme = "http"
		text, err = f.resolveHTTP(ctx, url)
	default:
		scheme = "unsupported"
		err = fmt.Errorf("unsupported document url scheme: %s", url)
	}

	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeFetch,
			attribute.String("fetch.scheme", scheme))
		return "", 0, err
	}

	size := utf8.RuneCountInString(text)
	span.SetAttributes(attribute.Int("fetch.document_size", size))
	return text, size, nil
}

// resolveHTTP 通过HTTP拉取文档文本
func (f *HTTPFetcher) resolveHTTP(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("构建文档请求失败: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("获取文档失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("获取文档失败: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("读取文档内容失败: %w", err)
	}

	return string(body), nil
}

// resolveObject 从对象存储读取 minio://bucket/key 形式的引用
// bucket段由存储层配置决定，这里只取key部分
func (f *HTTPFetcher) resolveObject(ctx context.Context, url string) (string, error) {
	if f.objectLoader == nil {
		return "", fmt.Errorf("object storage is not configured for url %s", url)
	}

	trimmed := strings.TrimPrefix(url, "minio://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid minio url: %s", url)
	}

	return f.objectLoader.GetObjectText(ctx, parts[1])
}
