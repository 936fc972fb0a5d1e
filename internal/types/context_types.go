package types

import "time"

// DocumentType 请求的文档类型
type DocumentType string

const (
	// DocumentTypeResume 简历文档
	DocumentTypeResume DocumentType = "resume"
	// DocumentTypeJobDescription 岗位描述文档（当前仅返回占位结果）
	DocumentTypeJobDescription DocumentType = "job_description"
)

// ParseStatus 解析结果状态
type ParseStatus string

const (
	// StatusSuccess 结构化解析成功
	StatusSuccess ParseStatus = "success"
	// StatusFallback 置信度不足或解析失败，返回降级结果
	StatusFallback ParseStatus = "fallback"
)

// ParseRequest 单次解析请求
// DocumentText 与 DocumentURL 二选一，优先使用内联文本
type ParseRequest struct {
	SessionID    string            `json:"session_id"`
	DocumentType DocumentType      `json:"document_type"`
	DocumentText string            `json:"document_text,omitempty"`
	DocumentURL  string            `json:"document_url,omitempty"`
	Options      map[string]string `json:"options,omitempty"`
	Context      map[string]string `json:"context,omitempty"`
}

// ParseResponse 单次解析响应，每次调用构造一次，成功路径会被缓存
type ParseResponse struct {
	SessionID  string             `json:"session_id"`
	Status     ParseStatus        `json:"status"`
	Structured *StructuredContext `json:"structured_context,omitempty"`
	Fallback   *FallbackContext   `json:"fallback_context,omitempty"`
	Metrics    ParseMetrics       `json:"metrics"`
	Timestamp  time.Time          `json:"timestamp"`
	Error      string             `json:"error,omitempty"`
}

// StructuredContext 从文档中提取出的结构化画像，构造完成后不再修改
type StructuredContext struct {
	PersonalInfo PersonalInfo     `json:"personal_info"`
	Experience   []WorkExperience `json:"experience"`
	Education    []Education      `json:"education"`
	Skills       SkillsBreakdown  `json:"skills"`
	Projects     []ProjectInfo    `json:"projects"`
	Summary      string           `json:"summary"`
	KeyStrengths []string         `json:"key_strengths"`
	CareerLevel  string           `json:"career_level"`
	Industries   []string         `json:"industries"`
}

// PersonalInfo 联系方式与基本信息，每个字段都可能为空
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// WorkExperience 一段工作经历
type WorkExperience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	IsCurrent    bool     `json:"is_current"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
}

// Education 一段教育经历，GPA 可能在条目创建后回填
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	GPA         string `json:"gpa,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Skill 一项技能，熟练度目前固定为 Intermediate
type Skill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// SkillsBreakdown 按类别归类的技能列表，条目不做去重
// Soft 与 Languages 目前不产出，保留字段以兼容下游 schema
type SkillsBreakdown struct {
	Technical   []Skill `json:"technical"`
	Programming []Skill `json:"programming"`
	Frameworks  []Skill `json:"frameworks"`
	Tools       []Skill `json:"tools"`
	Soft        []Skill `json:"soft,omitempty"`
	Languages   []Skill `json:"languages,omitempty"`
}

// ProjectInfo 项目经历，当前提取器不产出，仅为 schema 兼容保留
type ProjectInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ParseMetrics 单次请求的度量数据
type ParseMetrics struct {
	FetchDurationMs int64   `json:"fetch_duration_ms"`
	ParseDurationMs int64   `json:"parse_duration_ms"`
	TotalDurationMs int64   `json:"total_duration_ms"`
	DocumentSize    int     `json:"document_size"`
	FieldsExtracted int     `json:"fields_extracted"`
	Confidence      float64 `json:"confidence"`
	FallbackUsed    bool    `json:"fallback_used"`
	CacheHit        bool    `json:"cache_hit"`
}

// FallbackContext 降级结果
// RawText 只携带请求中的内联文本，URL 解析出的内容不会出现在这里
// Confidence 固定为 0.1，不使用计算值
type FallbackContext struct {
	RawText       string            `json:"raw_text"`
	ExtractedInfo map[string]string `json:"extracted_info"`
	Confidence    float64           `json:"confidence"`
	Reason        string            `json:"reason"`
}
