package parser

import (
	"strings"

	"context-service-go/internal/types"
)

const (
	bulletMarker     = "•"
	technologiesMark = "technologies:"
)

// extractExperience 从EXPERIENCE章节提取工作经历
// 非bullet的管道分隔行按 `Title | Company | StartDate - EndDate` 开启新条目，
// bullet行追加到当前条目的成果列表
// 计数：新条目+3（职位/公司/时间段），每条成果+1，每个技术项+1
func extractExperience(idx *SectionIndex) ([]types.WorkExperience, int) {
	var entries []types.WorkExperience
	fields := 0

	for _, line := range idx.LinesIn(SectionExperience) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, bulletMarker) {
			if len(entries) == 0 {
				continue // 没有归属条目的bullet直接丢弃
			}
			current := &entries[len(entries)-1]

			content := strings.TrimSpace(strings.TrimPrefix(trimmed, bulletMarker))
			if content == "" {
				continue
			}
			current.Achievements = append(current.Achievements, content)
			fields++

			// "technologies:" bullet 额外按逗号展开成技术列表
			lower := strings.ToLower(content)
			if pos := strings.Index(lower, technologiesMark); pos >= 0 {
				rest := content[pos+len(technologiesMark):]
				for _, tech := range strings.Split(rest, ",") {
					tech = strings.TrimSpace(tech)
					if tech == "" {
						continue
					}
					current.Technologies = append(current.Technologies, tech)
					fields++
				}
			}
			continue
		}

		if strings.Contains(trimmed, "|") {
			entries = append(entries, parseExperienceHeader(trimmed))
			fields += 3
		}
	}

	return entries, fields
}

// parseExperienceHeader 解析 `Title | Company | StartDate - EndDate` 行
func parseExperienceHeader(line string) types.WorkExperience {
	entry := types.WorkExperience{
		Achievements: []string{},
		Technologies: []string{},
	}

	parts := strings.Split(line, "|")
	entry.Title = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		entry.Company = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		start, end := splitDateRange(parts[2])
		entry.StartDate = start
		entry.EndDate = end
		entry.IsCurrent = strings.Contains(strings.ToLower(end), "present")
	}
	return entry
}

// splitDateRange 把 "2020 - Present" 切成起止两段
func splitDateRange(s string) (string, string) {
	parts := strings.SplitN(s, "-", 2)
	start := strings.TrimSpace(parts[0])
	end := ""
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}
