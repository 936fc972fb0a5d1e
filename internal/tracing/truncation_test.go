package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMaskPII 验证不同长度敏感值的掩码规则
func TestMaskPII(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"空值", "", ""},
		{"单字符", "a", "*"},
		{"两字符", "ab", "a*"},
		{"四字符", "abcd", "a**d"},
		{"长值保留首尾各两位", "john.doe@email.com", "jo**************om"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskPII(tc.value))
		})
	}
}

// TestSafeAttributeValue 验证敏感属性名触发掩码，普通属性只截断
func TestSafeAttributeValue(t *testing.T) {
	masked := SafeAttributeValue("user.email", "john@test.org", DefaultMaxLength)
	assert.NotContains(t, masked, "john@test.org")
	assert.Contains(t, masked, "*")

	plain := SafeAttributeValue("document.kind", "resume", DefaultMaxLength)
	assert.Equal(t, "resume", plain)
}

// TestTruncateString 验证超长值的首尾截断
func TestTruncateString(t *testing.T) {
	short := TruncateString("hello", 10)
	assert.Equal(t, "hello", short)

	long := TruncateString(strings.Repeat("x", 50), 11)
	assert.Len(t, []rune(long), 11)
	assert.Contains(t, long, "...")
}

// TestSafeRedisKey 验证Redis键的长度上限
func TestSafeRedisKey(t *testing.T) {
	key := strings.Repeat("k", 300)
	safe := SafeRedisKey(key)
	assert.LessOrEqual(t, len([]rune(safe)), MaxRedisLength)
}
