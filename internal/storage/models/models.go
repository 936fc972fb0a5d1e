package models

import (
	"time"

	"gorm.io/datatypes"
)

// ParseRecord 解析审计记录表
// 每次成功解析落一条，按会话ID+时间戳定位，降级结果不落库
type ParseRecord struct {
	RecordUUID      string         `gorm:"type:char(36);primaryKey"`
	SessionID       string         `gorm:"type:varchar(255);not null;index:idx_pr_session_id"`
	DocumentType    string         `gorm:"type:varchar(50);not null"`
	Status          string         `gorm:"type:varchar(20);not null"`
	Confidence      float64        `gorm:"type:decimal(4,3);not null"`
	FieldsExtracted int            `gorm:"type:int;not null"`
	DocumentSize    int            `gorm:"type:int;not null"`
	RawTextMD5      string         `gorm:"type:char(32);index:idx_pr_raw_text_md5"`
	ContextJSON     datatypes.JSON `gorm:"type:json"`
	ArchivePathOSS  string         `gorm:"type:varchar(1024)"`
	ParserVersion   string         `gorm:"type:varchar(50)"`
	ParsedAt        time.Time      `gorm:"type:datetime(6);not null;index:idx_pr_parsed_at"`
	CreatedAt       time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
}

func (ParseRecord) TableName() string {
	return "parse_records"
}
