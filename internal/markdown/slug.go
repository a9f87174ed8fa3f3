package markdown

import (
	"regexp"
	"strings"
)

var (
	// 与 JS 的 \s 一致，含 NBSP 等 Unicode 空白
	whitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	nonWordRe    = regexp.MustCompile(`[^\w-]+`)
)

// Slugify 标题锚点：小写，空白转 -，去掉 [A-Za-z0-9_-] 以外的字符。首尾空白同样转为 -
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = whitespaceRe.ReplaceAllString(s, "-")
	return nonWordRe.ReplaceAllString(s, "")
}
