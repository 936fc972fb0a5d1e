package parser

import (
	"context"

	"context-service-go/internal/constants"
	"context-service-go/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 定义tracer
var tracer = otel.Tracer("context-service-go/parser")

// ResumeParser 简历文本的结构化提取器
// 纯CPU文本扫描，不持有任何外部连接，可安全并发使用
type ResumeParser struct {
	taxonomy *Taxonomy
}

// NewResumeParser 创建简历提取器，taxonomy为nil时使用内置关键词表
func NewResumeParser(taxonomy *Taxonomy) *ResumeParser {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &ResumeParser{taxonomy: taxonomy}
}

// Parse 对简历文本执行完整提取流水线
// 返回结构化画像和总提取字段数（含4个派生洞察的固定加成）
// 各提取阶段之间检查ctx，调用方取消时尽快返回
func (p *ResumeParser) Parse(ctx context.Context, text string) (*types.StructuredContext, int, error) {
	ctx, span := tracer.Start(ctx, "ResumeParser.Parse",
		trace.WithAttributes(attribute.Int("document.size", len(text))),
	)
	defer span.End()

	// 章节预扫描，所有提取器共享同一份索引
	idx := ScanSections(text)

	sc := &types.StructuredContext{
		Experience:   []types.WorkExperience{},
		Education:    []types.Education{},
		Projects:     []types.ProjectInfo{},
		KeyStrengths: []string{},
		Industries:   []string{},
	}
	fields := 0

	personalInfo, n := extractPersonalInfo(text)
	sc.PersonalInfo = personalInfo
	fields += n

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	experience, n := extractExperience(idx)
	sc.Experience = experience
	fields += n

	education, n := extractEducation(idx)
	sc.Education = education
	fields += n

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	skills, n := extractSkills(idx, p.taxonomy)
	sc.Skills = skills
	fields += n

	// 派生洞察依赖上面的提取结果，必须最后执行
	sc.Summary = buildSummary(sc)
	sc.CareerLevel = deriveCareerLevel(len(sc.Experience))
	sc.KeyStrengths = deriveKeyStrengths(sc)
	sc.Industries = deriveIndustries(text, p.taxonomy)
	fields += constants.InsightBonusFields

	span.SetAttributes(
		attribute.Int("parse.fields_extracted", fields),
		attribute.Int("parse.experience_entries", len(sc.Experience)),
		attribute.Int("parse.education_entries", len(sc.Education)),
	)

	return sc, fields, nil
}
