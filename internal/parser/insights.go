package parser

import (
	"fmt"
	"strings"

	"context-service-go/internal/types"
)

// buildSummary 按固定模板生成一句话摘要
// 模板确定性拼接：基础语句 + 第一段经历 + 前两项编程技能，句号收尾
func buildSummary(sc *types.StructuredContext) string {
	var b strings.Builder
	b.WriteString("Experienced professional")

	if len(sc.Experience) > 0 {
		first := sc.Experience[0]
		b.WriteString(fmt.Sprintf(" with experience as %s at %s", first.Title, first.Company))
	}

	if len(sc.Skills.Programming) > 0 {
		b.WriteString(fmt.Sprintf(". Skilled in %s", sc.Skills.Programming[0].Name))
		if len(sc.Skills.Programming) > 1 {
			b.WriteString(fmt.Sprintf(" and %s", sc.Skills.Programming[1].Name))
		}
	}

	b.WriteString(".")
	return b.String()
}

// deriveCareerLevel 用经历条目数估算职级
// years ≈ 条目数*2，是经历年限的粗略代理而非真实跨度
func deriveCareerLevel(experienceCount int) string {
	years := experienceCount * 2
	switch {
	case years <= 2:
		return "Entry"
	case years <= 5:
		return "Mid"
	case years <= 10:
		return "Senior"
	default:
		return "Executive"
	}
}

// deriveKeyStrengths 根据技能和经历推断核心优势
func deriveKeyStrengths(sc *types.StructuredContext) []string {
	strengths := []string{}

	if len(sc.Skills.Programming) > 0 {
		strengths = append(strengths, "Software Development")
	}
	if len(sc.Skills.Technical) > 0 {
		strengths = append(strengths, "Technical Expertise")
	}
	for _, exp := range sc.Experience {
		lower := strings.ToLower(exp.Title)
		if strings.Contains(lower, "senior") || strings.Contains(lower, "lead") {
			strengths = append(strengths, "Leadership")
			break
		}
	}

	return strengths
}

// deriveIndustries 全文扫描行业关键词
// 按关键词表的固定顺序迭代，保证多次运行输出顺序一致
func deriveIndustries(text string, tax *Taxonomy) []string {
	lower := strings.ToLower(text)
	industries := []string{}
	for _, entry := range tax.Industries {
		if strings.Contains(lower, entry.Keyword) {
			industries = append(industries, entry.Label)
		}
	}
	return industries
}
