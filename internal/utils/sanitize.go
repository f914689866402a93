package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// 实体编码可以层层嵌套，超过该轮数仍未稳定时保留转义形式
const maxSanitizeRounds = 4

// SanitizeText 去除用户输入中的全部 HTML 标签，保留纯文本。
// 反转义后的结果会再次过滤，直到不再变化，避免 &lt;script&gt; 还原成标签。
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	out := s
	for i := 0; i < maxSanitizeRounds; i++ {
		cleaned := html.UnescapeString(strictPolicy.Sanitize(out))
		if cleaned == out {
			return strings.TrimSpace(out)
		}
		out = cleaned
	}
	return strings.TrimSpace(strictPolicy.Sanitize(out))
}

// SanitizeTags 清洗标签并丢弃清洗后为空的项，保持原有顺序
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if cleaned := SanitizeText(tag); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
