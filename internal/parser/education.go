package parser

import (
	"regexp"
	"strings"

	"context-service-go/internal/types"
)

var gpaRegex = regexp.MustCompile(`\d\.\d/\d\.\d`)

// extractEducation 从EDUCATION章节提取教育经历
// 管道分隔行按 `Degree | Institution | StartDate-EndDate` 创建条目，
// 之后出现的 "GPA" 行只回填到最近创建的那个条目
// 计数：新条目+2（学位/学校），GPA回填+1
func extractEducation(idx *SectionIndex) ([]types.Education, int) {
	var entries []types.Education
	fields := 0

	for _, line := range idx.LinesIn(SectionEducation) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.Contains(trimmed, "|") {
			entry := types.Education{}
			parts := strings.Split(trimmed, "|")
			entry.Degree = strings.TrimSpace(parts[0])
			if len(parts) > 1 {
				entry.Institution = strings.TrimSpace(parts[1])
			}
			if len(parts) > 2 {
				start, end := splitDateRange(parts[2])
				entry.StartDate = start
				entry.EndDate = end
			}
			entries = append(entries, entry)
			fields += 2
			continue
		}

		if strings.Contains(strings.ToUpper(trimmed), "GPA") && len(entries) > 0 {
			if gpa := gpaRegex.FindString(trimmed); gpa != "" {
				entries[len(entries)-1].GPA = gpa
				fields++
			}
		}
	}

	return entries, fields
}
