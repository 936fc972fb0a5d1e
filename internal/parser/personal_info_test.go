package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractPersonalInfo 验证联系方式提取和字段计数
func TestExtractPersonalInfo(t *testing.T) {
	text := "John Doe\n" +
		"john.doe@email.com | (555) 123-4567\n" +
		"San Francisco, CA\n" +
		"linkedin.com/in/johndoe | github.com/johndoe\n"

	info, fields := extractPersonalInfo(text)

	assert.Equal(t, "John Doe", info.Name)
	assert.Equal(t, "john.doe@email.com", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Equal(t, "San Francisco, CA", info.Location)
	assert.Equal(t, "linkedin.com/in/johndoe", info.LinkedIn)
	assert.Equal(t, "github.com/johndoe", info.GitHub)
	assert.Equal(t, 6, fields)
}

// TestExtractPersonalInfoPartial 验证字段各自独立，缺失不影响其他字段
func TestExtractPersonalInfoPartial(t *testing.T) {
	info, fields := extractPersonalInfo("contact: jane@test.org\n")

	assert.Empty(t, info.Name)
	assert.Equal(t, "jane@test.org", info.Email)
	assert.Empty(t, info.Phone)
	assert.Equal(t, 1, fields)
}

// TestMatchName 验证姓名启发式的各种边界
func TestMatchName(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    string
		matched bool
	}{
		{"标准两词姓名", "John Doe", "John Doe", true},
		{"带首尾空白", "  Jane Smith  ", "Jane Smith", true},
		{"三词姓名", "Mary Jane Watson", "Mary Jane Watson", true},
		{"单词不匹配", "Madonna", "", false},
		{"全大写标题不匹配", "SOFTWARE ENGINEER", "", false},
		{"包含数字不匹配", "John Doe2", "", false},
		{"过短不匹配", "J D", "", false},
		{"小写开头不匹配", "john doe", "", false},
		{"超过四个词不匹配", "One Two Three Four Five", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := matchName(tc.line)
			assert.Equal(t, tc.matched, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestExtractContactInfo 验证降级路径的轻量联系方式扫描
func TestExtractContactInfo(t *testing.T) {
	info := ExtractContactInfo("reach me at bob@corp.io or 555-867-5309")

	assert.Equal(t, "bob@corp.io", info["email"])
	assert.Equal(t, "555-867-5309", info["phone"])

	empty := ExtractContactInfo("nothing useful here")
	assert.Empty(t, empty)
}
