package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractExperience 验证经历条目、成果和技术列表的提取与计数
func TestExtractExperience(t *testing.T) {
	text := "EXPERIENCE\n" +
		"Senior Engineer | TechCorp | 2021 - Present\n" +
		"• Led the platform team\n" +
		"• Technologies: Go, Python, PostgreSQL\n" +
		"Engineer | DataWorks | 2018 - 2021\n" +
		"• Built data pipelines\n"

	entries, fields := extractExperience(ScanSections(text))

	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Senior Engineer", first.Title)
	assert.Equal(t, "TechCorp", first.Company)
	assert.Equal(t, "2021", first.StartDate)
	assert.Equal(t, "Present", first.EndDate)
	assert.True(t, first.IsCurrent)
	assert.Equal(t, []string{"Led the platform team", "Technologies: Go, Python, PostgreSQL"}, first.Achievements)
	assert.Equal(t, []string{"Go", "Python", "PostgreSQL"}, first.Technologies)

	second := entries[1]
	assert.Equal(t, "DataWorks", second.Company)
	assert.False(t, second.IsCurrent)
	assert.Equal(t, []string{"Built data pipelines"}, second.Achievements)
	assert.Empty(t, second.Technologies)

	// 条目2个×3 + 成果3条 + 技术3项
	assert.Equal(t, 12, fields)
}

// TestExtractExperienceIsCurrentCaseInsensitive 验证present大小写不敏感
func TestExtractExperienceIsCurrentCaseInsensitive(t *testing.T) {
	text := "EXPERIENCE\nEngineer | Acme | 2020 - present\n"

	entries, _ := extractExperience(ScanSections(text))

	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsCurrent)
}

// TestExtractExperienceOrphanBullet 验证没有归属条目的bullet被丢弃
func TestExtractExperienceOrphanBullet(t *testing.T) {
	text := "EXPERIENCE\n• floating achievement\nEngineer | Acme | 2020 - 2022\n"

	entries, fields := extractExperience(ScanSections(text))

	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Achievements)
	assert.Equal(t, 3, fields)
}

// TestExtractExperienceTechnologiesTokenCount 验证技术项逐个计数且跳过空项
func TestExtractExperienceTechnologiesTokenCount(t *testing.T) {
	text := "EXPERIENCE\n" +
		"Engineer | Acme | 2020 - 2022\n" +
		"• Technologies: Go, , Rust\n"

	entries, fields := extractExperience(ScanSections(text))

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Go", "Rust"}, entries[0].Technologies)
	// 条目+3，成果+1，技术2项
	assert.Equal(t, 6, fields)
}

// TestExtractExperienceOutsideSection 验证章节外的管道行不产生条目
func TestExtractExperienceOutsideSection(t *testing.T) {
	text := "Engineer | Acme | 2020 - 2022\nSKILLS\nGo\n"

	entries, fields := extractExperience(ScanSections(text))

	assert.Empty(t, entries)
	assert.Zero(t, fields)
}
