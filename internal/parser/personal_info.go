package parser

import (
	"regexp"
	"strings"
	"unicode"

	"context-service-go/internal/types"
)

var (
	emailRegex    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRegex    = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRegex = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9_\-]+`)
	githubRegex   = regexp.MustCompile(`github\.com/[A-Za-z0-9_\-]+`)
	locationRegex = regexp.MustCompile(`[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*, [A-Z]{2}\b`)
)

// extractPersonalInfo 从全文提取联系方式和姓名
// 返回提取结果和已填充字段数，每个非空字段计1
func extractPersonalInfo(text string) (types.PersonalInfo, int) {
	info := types.PersonalInfo{
		Email:    emailRegex.FindString(text),
		Phone:    phoneRegex.FindString(text),
		LinkedIn: linkedinRegex.FindString(text),
		GitHub:   githubRegex.FindString(text),
		Location: locationRegex.FindString(text),
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := matchName(line); ok {
			info.Name = name
			break
		}
	}

	fields := 0
	for _, v := range []string{info.Name, info.Email, info.Phone, info.Location, info.LinkedIn, info.GitHub} {
		if v != "" {
			fields++
		}
	}
	return info, fields
}

// matchName 朴素的姓名启发式：长度5-50的行，2-4个词，
// 每个词首字母大写、其余小写、不含数字
// 单个姓名、全大写标题行和非拉丁文字会漏判，属已知限制
func matchName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 5 || len(trimmed) > 50 {
		return "", false
	}

	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 || len(tokens) > 4 {
		return "", false
	}

	for _, token := range tokens {
		runes := []rune(token)
		if !unicode.IsUpper(runes[0]) {
			return "", false
		}
		for _, r := range runes[1:] {
			if !unicode.IsLower(r) {
				return "", false
			}
		}
	}
	return trimmed, true
}

// ExtractContactInfo 对原始文本做一次轻量联系方式扫描
// 降级路径用它填充 extracted_info，让低置信度响应仍携带可用信息
func ExtractContactInfo(text string) map[string]string {
	info := make(map[string]string)
	if email := emailRegex.FindString(text); email != "" {
		info["email"] = email
	}
	if phone := phoneRegex.FindString(text); phone != "" {
		info["phone"] = phone
	}
	return info
}
