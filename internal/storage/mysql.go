package storage

import (
	"context"
	"fmt"
	"time"

	"context-service-go/internal/config"
	"context-service-go/internal/storage/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var mysqlTracer = otel.Tracer("context-service-go/storage/mysql")

type spanContextKey struct{}

// GormTracingPlugin GORM插件，为数据库操作创建OpenTelemetry span
type GormTracingPlugin struct {
	tracer trace.Tracer
	dbName string
}

// NewGormTracingPlugin 创建GORM追踪插件
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer: mysqlTracer,
		dbName: dbName,
	}
}

// Name 返回插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 注册GORM回调以启用追踪
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	type hook struct {
		op       string
		register func() error
	}
	hooks := []hook{
		{"CREATE", func() error {
			if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("otel:after_create", p.after())
		}},
		{"SELECT", func() error {
			if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("otel:after_query", p.after())
		}},
		{"UPDATE", func() error {
			if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("otel:after_update", p.after())
		}},
		{"DELETE", func() error {
			if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after())
		}},
	}

	for _, h := range hooks {
		if err := h.register(); err != nil {
			return fmt.Errorf("注册%s追踪回调失败: %w", h.op, err)
		}
	}
	return nil
}

// before 返回在GORM操作之前执行的回调
func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		newCtx, span := p.tracer.Start(ctx, fmt.Sprintf("%s %s", operation, tableName),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemMySQL,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		)

		db.Statement.Context = context.WithValue(newCtx, spanContextKey{}, span)
	}
}

// after 返回在GORM操作之后执行的回调
func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value(spanContextKey{}).(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

		if db.Error != nil {
			if db.Error == gorm.ErrRecordNotFound {
				// 记录不存在属于正常业务分支
				span.SetAttributes(attribute.String("error.type", "record_not_found"))
				span.SetStatus(codes.Ok, "record not found")
			} else {
				span.RecordError(db.Error)
				span.SetAttributes(attribute.String("error.type", "database_error"))
				span.SetStatus(codes.Error, db.Error.Error())
			}
			return
		}
		span.SetStatus(codes.Ok, "")
	}
}

// MySQL 提供解析审计记录的持久化
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并迁移审计表
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	timeout := cfg.ConnectTimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, timeout)

	logLevel := gormlogger.Warn
	if cfg.LogLevel >= 1 && cfg.LogLevel <= 4 {
		logLevel = gormlogger.LogLevel(cfg.LogLevel)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	if err := db.Use(NewGormTracingPlugin(cfg.Database)); err != nil {
		return nil, fmt.Errorf("注册GORM追踪插件失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层数据库连接失败: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	m := &MySQL{db: db, cfg: cfg}
	if err := m.autoMigrateSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

// autoMigrateSchema 迁移审计记录表结构
func (m *MySQL) autoMigrateSchema() error {
	if err := m.db.AutoMigrate(&models.ParseRecord{}); err != nil {
		return fmt.Errorf("迁移parse_records表失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveParseRecord 写入一条解析审计记录
func (m *MySQL) SaveParseRecord(ctx context.Context, record *models.ParseRecord) error {
	if record == nil {
		return fmt.Errorf("审计记录不能为空")
	}
	return m.db.WithContext(ctx).Create(record).Error
}

// ListParseRecords 按会话ID查询审计记录，时间倒序
func (m *MySQL) ListParseRecords(ctx context.Context, sessionID string, limit int) ([]models.ParseRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.ParseRecord
	err := m.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("parsed_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
