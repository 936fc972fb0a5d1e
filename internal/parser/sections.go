package parser

import "strings"

// SectionType 文档章节类型
type SectionType string

const (
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "EXPERIENCE"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
)

// sectionKeywords 各章节的入口关键词，按固定顺序匹配
// 行内大小写不敏感的包含匹配即视为章节标题，这是刻意保留的朴素策略
var sectionKeywords = []struct {
	Type     SectionType
	Keywords []string
}{
	{SectionExperience, []string{"EXPERIENCE", "EMPLOYMENT"}},
	{SectionEducation, []string{"EDUCATION"}},
	{SectionSkills, []string{"SKILLS"}},
}

// LineRange 半开行区间 [Start, End)
type LineRange struct {
	Start int
	End   int
}

// SectionIndex 一次预扫描产出的章节索引
// 所有提取器共享同一份索引，避免各自维护关键词集合导致漂移
type SectionIndex struct {
	Lines  []string
	Ranges map[SectionType][]LineRange
}

// ScanSections 按行扫描文本，切分出各章节的行区间
// 任一章节标题行都会结束当前章节；标题行本身不属于任何区间
func ScanSections(text string) *SectionIndex {
	lines := strings.Split(text, "\n")
	// 以换行符结尾的文本split后会多出一个空尾元素，剔除掉
	// 避免最后一个章节的区间带上这行假内容
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	idx := &SectionIndex{
		Lines:  lines,
		Ranges: make(map[SectionType][]LineRange),
	}

	var current SectionType
	start := -1

	closeCurrent := func(end int) {
		if current != "" && start >= 0 && end > start {
			idx.Ranges[current] = append(idx.Ranges[current], LineRange{Start: start, End: end})
		}
	}

	for i, line := range lines {
		if t, ok := matchSectionHeader(line); ok {
			closeCurrent(i)
			current = t
			start = i + 1
		}
	}
	closeCurrent(len(lines))

	return idx
}

// matchSectionHeader 判断一行是否命中某个章节关键词
func matchSectionHeader(line string) (SectionType, bool) {
	upper := strings.ToUpper(line)
	for _, sec := range sectionKeywords {
		for _, kw := range sec.Keywords {
			if strings.Contains(upper, kw) {
				return sec.Type, true
			}
		}
	}
	return "", false
}

// LinesIn 返回指定章节的所有行，多个区间按出现顺序拼接
func (idx *SectionIndex) LinesIn(t SectionType) []string {
	var out []string
	for _, r := range idx.Ranges[t] {
		out = append(out, idx.Lines[r.Start:r.End]...)
	}
	return out
}
