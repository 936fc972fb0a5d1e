package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"context-service-go/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/rs/zerolog"
)

// ObjectStorage 对象存储接口
// 归档对象的清理交给桶生命周期规则，不提供删除操作
type ObjectStorage interface {
	// ArchiveParseResponse 归档解析响应JSON，按会话ID+时间戳组键
	ArchiveParseResponse(ctx context.Context, sessionID string, timestamp time.Time, payload []byte) (string, error)

	// GetObjectText 读取对象文本内容，minio://引用解析走这里
	GetObjectText(ctx context.Context, objectKey string) (string, error)
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供解析结果归档的对象存储功能
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
	bucket string
	logger zerolog.Logger
}

// NewMinIO 创建MinIO客户端并确保归档桶就绪
func NewMinIO(cfg *config.MinIOConfig, logger zerolog.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	bucket := cfg.ContextBucket
	if bucket == "" {
		bucket = "parsed-contexts"
	}

	m := &MinIO{
		client: client,
		cfg:    cfg,
		bucket: bucket,
		logger: logger,
	}

	if err := m.ensureBucketExists(bucket); err != nil {
		return nil, err
	}
	if cfg.ArchiveDays > 0 {
		if err := m.setupBucketLifecycle(context.Background(), "expire-contexts", cfg.ArchiveDays); err != nil {
			// 生命周期规则失败不阻塞启动，过期清理可以后补
			m.logger.Warn().Err(err).Str("bucket", bucket).Msg("设置归档生命周期规则失败")
		}
	}

	return m, nil
}

// ensureBucketExists 检查归档桶，不存在则创建
func (m *MinIO) ensureBucketExists(bucketName string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		if err := m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
		m.logger.Info().Str("bucket", bucketName).Msg("归档存储桶创建成功")
	}
	return nil
}

// setupBucketLifecycle 为归档桶设置过期天数
func (m *MinIO) setupBucketLifecycle(ctx context.Context, ruleID string, expiryDays int) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, m.bucket, lc)
}

// ArchiveParseResponse 把解析响应JSON写入归档桶
// 对象键: contexts/{sessionID}/{unix毫秒}.json
func (m *MinIO) ArchiveParseResponse(ctx context.Context, sessionID string, timestamp time.Time, payload []byte) (string, error) {
	objectKey := fmt.Sprintf("contexts/%s/%d.json", sessionID, timestamp.UnixMilli())

	_, err := m.client.PutObject(ctx, m.bucket, objectKey,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("归档解析响应 %s 失败: %w", objectKey, err)
	}
	return objectKey, nil
}

// GetObjectText 读取对象的文本内容
func (m *MinIO) GetObjectText(ctx context.Context, objectKey string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("读取对象 %s 失败: %w", objectKey, err)
	}
	defer obj.Close()

	var sb strings.Builder
	if _, err := io.Copy(&sb, obj); err != nil {
		return "", fmt.Errorf("读取对象 %s 内容失败: %w", objectKey, err)
	}
	return sb.String(), nil
}
