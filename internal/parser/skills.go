package parser

import (
	"strings"

	"context-service-go/internal/types"
)

// defaultProficiency 提取器不做水平判定，统一给中级
const defaultProficiency = "Intermediate"

// extractSkills 从SKILLS章节按关键词包含匹配提取技能
// 每行小写后对四张关键词表做子串匹配，数据库类归入technical
// 同一关键词在多行重复出现会产生重复条目，这里刻意不去重
// 计数：每个命中+1
func extractSkills(idx *SectionIndex, tax *Taxonomy) (types.SkillsBreakdown, int) {
	breakdown := types.SkillsBreakdown{
		Technical:   []types.Skill{},
		Programming: []types.Skill{},
		Frameworks:  []types.Skill{},
		Tools:       []types.Skill{},
	}
	fields := 0

	for _, line := range idx.LinesIn(SectionSkills) {
		lower := strings.ToLower(line)
		if strings.TrimSpace(lower) == "" {
			continue
		}

		fields += matchKeywords(lower, tax.ProgrammingLanguages, &breakdown.Programming)
		fields += matchKeywords(lower, tax.Frameworks, &breakdown.Frameworks)
		fields += matchKeywords(lower, tax.Tools, &breakdown.Tools)
		fields += matchKeywords(lower, tax.Databases, &breakdown.Technical)
	}

	return breakdown, fields
}

// matchKeywords 把行内命中的关键词追加到目标技能列表
func matchKeywords(lowerLine string, keywords []string, dst *[]types.Skill) int {
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lowerLine, kw) {
			*dst = append(*dst, types.Skill{Name: kw, Proficiency: defaultProficiency})
			matched++
		}
	}
	return matched
}
