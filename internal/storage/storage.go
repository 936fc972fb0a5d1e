package storage

import (
	"context"
	"fmt"
	"strings"

	"context-service-go/internal/config"
	"context-service-go/internal/logger"
)

// Storage 存储管理器，聚合所有存储相关依赖
// 各组件都是可选的，未配置时对应字段为nil，服务以纯内存模式运行
type Storage struct {
	// 对象存储，解析结果归档
	MinIO *MinIO

	// 消息队列，解析完成事件
	RabbitMQ *RabbitMQ

	// 关系型数据库，解析审计记录
	MySQL *MySQL

	// 键值存储，二级共享响应缓存
	Redis *Redis
}

// NewStorage 创建存储管理器
// 单个组件初始化失败只告警不阻塞，全部配置组件都失败才返回错误
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}
	var err error
	var initErrors []string
	configured := 0

	// 初始化MinIO（如果配置了）
	if cfg.MinIO.Endpoint != "" {
		configured++
		storage.MinIO, err = NewMinIO(&cfg.MinIO, logger.Logger)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化MinIO失败")
			initErrors = append(initErrors, fmt.Sprintf("MinIO: %v", err))
		} else {
			logger.Info().Str("endpoint", cfg.MinIO.Endpoint).Msg("MinIO客户端初始化成功")
		}
	}

	// 初始化RabbitMQ（如果配置了）
	if cfg.RabbitMQ.URL != "" {
		configured++
		storage.RabbitMQ, err = NewRabbitMQ(&cfg.RabbitMQ)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化RabbitMQ失败")
			initErrors = append(initErrors, fmt.Sprintf("RabbitMQ: %v", err))
		} else {
			logger.Info().Msg("RabbitMQ客户端初始化成功")
			// 事件交换机提前声明，发布路径不再关心拓扑
			if err := storage.RabbitMQ.EnsureExchange(cfg.RabbitMQ.ContextEventsExchange, "topic", true); err != nil {
				logger.Warn().Err(err).Msg("声明事件交换机失败")
			}
		}
	}

	// 初始化MySQL（如果配置了）
	if cfg.MySQL.Host != "" {
		configured++
		storage.MySQL, err = NewMySQL(&cfg.MySQL)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化MySQL失败")
			initErrors = append(initErrors, fmt.Sprintf("MySQL: %v", err))
		} else {
			logger.Info().Str("host", cfg.MySQL.Host).Msg("MySQL客户端初始化成功")
		}
	}

	// 初始化Redis（如果配置了）
	if cfg.Redis.Address != "" {
		configured++
		storage.Redis, err = NewRedisAdapter(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化Redis失败")
			initErrors = append(initErrors, fmt.Sprintf("Redis: %v", err))
		} else {
			logger.Info().Str("address", cfg.Redis.Address).Msg("Redis客户端初始化成功")
		}
	}

	// 全部配置组件都初始化失败时才放弃启动
	if configured > 0 && len(initErrors) == configured {
		return nil, fmt.Errorf("所有存储组件初始化失败: %s", strings.Join(initErrors, "; "))
	}

	if len(initErrors) > 0 {
		logger.Warn().Str("errors", strings.Join(initErrors, "; ")).Msg("部分存储组件初始化失败")
	}

	return storage, nil
}

// Close 关闭所有连接
func (s *Storage) Close() {
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}

	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭MySQL连接失败")
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	// MinIO客户端无需显式关闭
}
