package parser

import (
	"testing"

	"context-service-go/internal/types"

	"github.com/stretchr/testify/assert"
)

// TestBuildSummary 验证摘要模板的各种组合
func TestBuildSummary(t *testing.T) {
	t.Run("无经历无技能", func(t *testing.T) {
		sc := &types.StructuredContext{}
		assert.Equal(t, "Experienced professional.", buildSummary(sc))
	})

	t.Run("带首段经历", func(t *testing.T) {
		sc := &types.StructuredContext{
			Experience: []types.WorkExperience{
				{Title: "Engineer", Company: "Acme"},
				{Title: "Intern", Company: "Other"},
			},
		}
		assert.Equal(t, "Experienced professional with experience as Engineer at Acme.", buildSummary(sc))
	})

	t.Run("单项编程技能", func(t *testing.T) {
		sc := &types.StructuredContext{
			Skills: types.SkillsBreakdown{
				Programming: []types.Skill{{Name: "go"}},
			},
		}
		assert.Equal(t, "Experienced professional. Skilled in go.", buildSummary(sc))
	})

	t.Run("完整组合取前两项技能", func(t *testing.T) {
		sc := &types.StructuredContext{
			Experience: []types.WorkExperience{{Title: "Engineer", Company: "Acme"}},
			Skills: types.SkillsBreakdown{
				Programming: []types.Skill{{Name: "go"}, {Name: "python"}, {Name: "rust"}},
			},
		}
		assert.Equal(t, "Experienced professional with experience as Engineer at Acme. Skilled in go and python.", buildSummary(sc))
	})
}

// TestDeriveCareerLevel 验证职级阈值：条目数*2估算年限
func TestDeriveCareerLevel(t *testing.T) {
	cases := []struct {
		entries int
		want    string
	}{
		{0, "Entry"},
		{1, "Entry"},
		{2, "Mid"},
		{3, "Senior"},
		{5, "Senior"},
		{6, "Executive"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveCareerLevel(tc.entries), "entries=%d", tc.entries)
	}
}

// TestDeriveKeyStrengths 验证优势推断规则
func TestDeriveKeyStrengths(t *testing.T) {
	sc := &types.StructuredContext{
		Skills: types.SkillsBreakdown{
			Programming: []types.Skill{{Name: "go"}},
			Technical:   []types.Skill{{Name: "redis"}},
		},
		Experience: []types.WorkExperience{
			{Title: "Junior Developer"},
			{Title: "Senior Engineer"},
			{Title: "Lead Architect"},
		},
	}

	// senior/lead只计一次
	assert.Equal(t, []string{"Software Development", "Technical Expertise", "Leadership"}, deriveKeyStrengths(sc))
}

// TestDeriveKeyStrengthsEmpty 验证无命中时返回空列表而非nil崩溃
func TestDeriveKeyStrengthsEmpty(t *testing.T) {
	strengths := deriveKeyStrengths(&types.StructuredContext{})
	assert.Empty(t, strengths)
	assert.NotNil(t, strengths)
}

// TestDeriveIndustries 验证行业匹配按关键词表顺序输出且多次运行一致
func TestDeriveIndustries(t *testing.T) {
	tax := DefaultTaxonomy()
	text := "built tools for a startup in the healthcare space backed by fintech money"

	first := deriveIndustries(text, tax)
	assert.Equal(t, []string{"Financial Technology", "Healthcare", "Startup"}, first)

	// 顺序稳定性：重复运行输出完全一致
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, deriveIndustries(text, tax))
	}
}

// TestDeriveIndustriesNoMatch 验证无行业关键词时返回空列表
func TestDeriveIndustriesNoMatch(t *testing.T) {
	industries := deriveIndustries("nothing relevant", DefaultTaxonomy())
	assert.Empty(t, industries)
	assert.NotNil(t, industries)
}
