package markdown

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/homepage/internal/model"
)

const (
	// ExcerptRunes 摘要长度
	ExcerptRunes = 160
	// WordsPerMinute 阅读速度
	WordsPerMinute = 200
)

// Document 渲染结果及从 HTML 中提取的信息
type Document struct {
	HTML           template.HTML
	PlainText      string
	Excerpt        string
	TOC            []model.Heading
	ReadingMinutes int
}

// RenderDocument 渲染 markdown 并提取目录、纯文本、摘要
func (r *Renderer) RenderDocument(src []byte) (*Document, error) {
	rendered := r.Render(src)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(rendered)))
	if err != nil {
		return nil, fmt.Errorf("解析渲染结果失败: %w", err)
	}

	toc := make([]model.Heading, 0)
	doc.Find("h2[id], h3[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" {
			return
		}
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		toc = append(toc, model.Heading{Level: level, ID: id, Text: strings.TrimSpace(s.Text())})
	})

	// 代码不计入正文
	doc.Find("pre").Remove()
	words := strings.Fields(doc.Text())
	plain := strings.Join(words, " ")

	return &Document{
		HTML:           rendered,
		PlainText:      plain,
		Excerpt:        Excerpt(plain, ExcerptRunes),
		TOC:            toc,
		ReadingMinutes: ReadingMinutes(len(words)),
	}, nil
}

// Excerpt 截取前 limit 个字符，尽量在词边界处断开
func Excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ReadingMinutes 按 200 词/分钟估算，至少 1 分钟
func ReadingMinutes(words int) int {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
