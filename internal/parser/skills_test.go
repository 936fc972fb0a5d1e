package parser

import (
	"testing"

	"context-service-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillNames(skills []types.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

// TestExtractSkills 验证四类关键词表的归类和计数
func TestExtractSkills(t *testing.T) {
	text := "SKILLS\n" +
		"Languages: Go, Python\n" +
		"Tools: Docker, Kubernetes\n" +
		"Databases: PostgreSQL, Redis\n"

	breakdown, fields := extractSkills(ScanSections(text), DefaultTaxonomy())

	assert.Equal(t, []string{"go", "python"}, skillNames(breakdown.Programming))
	assert.Equal(t, []string{"docker", "kubernetes"}, skillNames(breakdown.Tools))
	// 数据库类归入technical
	assert.Equal(t, []string{"postgresql", "redis"}, skillNames(breakdown.Technical))
	assert.Equal(t, 6, fields)
}

// TestExtractSkillsProficiencyFixed 验证所有技能统一为Intermediate
func TestExtractSkillsProficiencyFixed(t *testing.T) {
	text := "SKILLS\nGo, React, Docker, MySQL\n"

	breakdown, _ := extractSkills(ScanSections(text), DefaultTaxonomy())

	all := append(append(append(breakdown.Programming, breakdown.Frameworks...), breakdown.Tools...), breakdown.Technical...)
	require.NotEmpty(t, all)
	for _, s := range all {
		assert.Equal(t, "Intermediate", s.Proficiency)
	}
}

// TestExtractSkillsNoDedup 验证重复出现的关键词产生重复条目
func TestExtractSkillsNoDedup(t *testing.T) {
	text := "SKILLS\nGo is my main language\nI also write Go tooling\n"

	breakdown, fields := extractSkills(ScanSections(text), DefaultTaxonomy())

	assert.Equal(t, []string{"go", "go"}, skillNames(breakdown.Programming))
	assert.Equal(t, 2, fields)
}

// TestExtractSkillsSubstringMatch 验证按子串包含匹配，django同时命中go
func TestExtractSkillsSubstringMatch(t *testing.T) {
	text := "SKILLS\nDjango\n"

	breakdown, _ := extractSkills(ScanSections(text), DefaultTaxonomy())

	assert.Equal(t, []string{"go"}, skillNames(breakdown.Programming))
	assert.Equal(t, []string{"django"}, skillNames(breakdown.Frameworks))
}

// TestExtractSkillsOutsideSection 验证章节外的技能关键词不被提取
func TestExtractSkillsOutsideSection(t *testing.T) {
	text := "I love Go and Python\n"

	breakdown, fields := extractSkills(ScanSections(text), DefaultTaxonomy())

	assert.Empty(t, breakdown.Programming)
	assert.Zero(t, fields)
}
