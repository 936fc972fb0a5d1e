package parser

import "context-service-go/internal/types"

// JobDescriptionSummary 岗位描述占位结果的固定摘要文案
// 下游按该文案识别未实现状态，修改前需同步消费方
const JobDescriptionSummary = "Job description parsing not fully implemented"

// ParseJobDescription 岗位描述解析的占位实现
// 只返回摘要字段，计1个提取字段；保留完整schema以兼容下游
func ParseJobDescription(text string) (*types.StructuredContext, int) {
	sc := &types.StructuredContext{
		Experience:   []types.WorkExperience{},
		Education:    []types.Education{},
		Projects:     []types.ProjectInfo{},
		KeyStrengths: []string{},
		Industries:   []string{},
		Summary:      JobDescriptionSummary,
	}
	return sc, 1
}
