package markdown

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// 元素样式
const (
	classH1         = "text-3xl md:text-4xl font-bold mb-4 mt-8 scroll-mt-20"
	classH2         = "text-2xl md:text-3xl font-bold mb-3 mt-8 scroll-mt-20"
	classH3         = "text-xl md:text-2xl font-bold mb-3 mt-6 scroll-mt-20"
	classParagraph  = "my-4 leading-relaxed"
	classLink       = "text-blue-600 hover:underline"
	classUL         = "list-disc list-inside my-4 pl-4 space-y-2"
	classOL         = "list-decimal list-inside my-4 pl-4 space-y-2"
	classLI         = "mb-1"
	classCode       = "px-2 py-1 rounded-md font-mono text-sm bg-slate-100 text-slate-700 border border-slate-300"
	classCodeBlock  = "code-block my-6 p-4 rounded-lg overflow-x-auto bg-slate-900 text-slate-100 text-sm"
	classFigure     = "my-8"
	classFigcaption = "text-center text-sm text-gray-600 mt-3 italic"
	classGallery    = "grid grid-cols-1 md:grid-cols-2 gap-4 my-8"
)

var calloutClasses = map[string]string{
	"info":    "bg-blue-50 border-blue-500",
	"warning": "bg-amber-50 border-amber-500",
	"error":   "bg-red-50 border-red-500",
}

// Renderer 将 markdown 渲染为带样式的 HTML
type Renderer struct {
	extensions parser.Extensions
}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	return &Renderer{
		extensions: parser.CommonExtensions | parser.Footnotes,
	}
}

// Render 渲染 markdown；parser 与 html renderer 都有状态，每次新建
func (r *Renderer) Render(src []byte) template.HTML {
	if len(bytes.TrimSpace(src)) == 0 {
		return ""
	}

	p := parser.NewWithExtensions(r.extensions)
	doc := markdown.Parse(src, p)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags,
		RenderNodeHook: renderNode,
	})

	return template.HTML(markdown.Render(doc, renderer))
}

// renderNode 自定义元素映射；返回 false 时交给默认渲染
func renderNode(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return renderHeading(w, n, entering)
	case *ast.Paragraph:
		return renderParagraph(w, n, entering)
	case *ast.Link:
		return renderLink(w, n, entering)
	case *ast.Image:
		return renderImage(w, n, entering)
	case *ast.List:
		tag, class := "ul", classUL
		if n.ListFlags&ast.ListTypeOrdered != 0 {
			tag, class = "ol", classOL
		}
		if entering {
			fmt.Fprintf(w, `<%s class="%s">`, tag, class)
		} else {
			fmt.Fprintf(w, "</%s>\n", tag)
		}
		return ast.GoToNext, true
	case *ast.ListItem:
		if entering {
			fmt.Fprintf(w, `<li class="%s">`, classLI)
		} else {
			io.WriteString(w, "</li>\n")
		}
		return ast.GoToNext, true
	case *ast.Code:
		fmt.Fprintf(w, `<code class="%s">%s</code>`, classCode, html.EscapeString(string(n.Literal)))
		return ast.GoToNext, true
	case *ast.CodeBlock:
		return renderCodeBlock(w, n)
	case *ast.BlockQuote:
		return renderCallout(w, n, entering)
	}
	return ast.GoToNext, false
}

func renderHeading(w io.Writer, h *ast.Heading, entering bool) (ast.WalkStatus, bool) {
	if h.Level > 3 {
		return ast.GoToNext, false
	}
	class := map[int]string{1: classH1, 2: classH2, 3: classH3}[h.Level]
	if entering {
		id := Slugify(nodeText(h))
		fmt.Fprintf(w, `<h%d id="%s" class="%s"><a href="#%s" class="no-underline">`, h.Level, id, class, id)
	} else {
		fmt.Fprintf(w, "</a></h%d>\n", h.Level)
	}
	return ast.GoToNext, true
}

func renderParagraph(w io.Writer, p *ast.Paragraph, entering bool) (ast.WalkStatus, bool) {
	// 含图片的段落不包 <p>，figure 不能出现在 p 内
	if inTightList(p) || containsImage(p) {
		if !entering {
			io.WriteString(w, "\n")
		}
		return ast.GoToNext, true
	}
	if entering {
		fmt.Fprintf(w, `<p class="%s">`, classParagraph)
	} else {
		io.WriteString(w, "</p>\n")
	}
	return ast.GoToNext, true
}

func renderLink(w io.Writer, l *ast.Link, entering bool) (ast.WalkStatus, bool) {
	if l.NoteID != 0 {
		return ast.GoToNext, false // 脚注引用
	}
	if !entering {
		io.WriteString(w, "</a>")
		return ast.GoToNext, true
	}
	href := safeHref(string(l.Destination))
	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") {
		fmt.Fprintf(w, `<a href="%s" class="%s">`, html.EscapeString(href), classLink)
	} else {
		fmt.Fprintf(w, `<a href="%s" target="_blank" rel="noopener noreferrer" class="%s">`, html.EscapeString(href), classLink)
	}
	return ast.GoToNext, true
}

func renderImage(w io.Writer, img *ast.Image, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		return ast.GoToNext, true
	}
	alt := nodeText(img)
	fullWidth := strings.Contains(string(img.Title), "fullwidth")

	frame, fit := "w-full h-64 md:h-96", "object-contain"
	if fullWidth {
		frame, fit = "w-full h-[400px] md:h-[600px]", "object-cover"
	}

	fmt.Fprintf(w, `<figure class="%s"><div class="relative %s rounded-lg overflow-hidden">`, classFigure, frame)
	fmt.Fprintf(w, `<img src="%s" alt="%s" loading="lazy" class="w-full h-full %s">`,
		html.EscapeString(safeHref(string(img.Destination))), html.EscapeString(alt), fit)
	io.WriteString(w, "</div>")
	if alt != "" {
		fmt.Fprintf(w, `<figcaption class="%s">%s</figcaption>`, classFigcaption, html.EscapeString(alt))
	}
	io.WriteString(w, "</figure>\n")
	return ast.SkipChildren, true
}

func renderCodeBlock(w io.Writer, cb *ast.CodeBlock) (ast.WalkStatus, bool) {
	lang := strings.TrimSpace(string(cb.Info))
	if lang == "gallery" {
		renderGallery(w, cb.Literal)
		return ast.GoToNext, true
	}

	fmt.Fprintf(w, `<pre class="%s">`, classCodeBlock)
	if lang != "" {
		fmt.Fprintf(w, `<code class="language-%s">`, html.EscapeString(strings.Fields(lang)[0]))
	} else {
		io.WriteString(w, "<code>")
	}
	io.WriteString(w, html.EscapeString(string(cb.Literal)))
	io.WriteString(w, "</code></pre>\n")
	return ast.GoToNext, true
}

// renderGallery 每行 "src | alt"
func renderGallery(w io.Writer, body []byte) {
	fmt.Fprintf(w, `<div class="%s">`, classGallery)
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		src, alt, _ := strings.Cut(line, "|")
		fmt.Fprintf(w, `<div class="relative h-64 rounded-lg overflow-hidden"><img src="%s" alt="%s" loading="lazy" class="w-full h-full object-cover hover:scale-105 transition-transform duration-300"></div>`,
			html.EscapeString(safeHref(strings.TrimSpace(src))), html.EscapeString(strings.TrimSpace(alt)))
	}
	io.WriteString(w, "</div>\n")
}

// renderCallout 引用块渲染为提示框，首行 [!warning] 之类的标记决定类型
func renderCallout(w io.Writer, bq *ast.BlockQuote, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		io.WriteString(w, "</div>\n")
		return ast.GoToNext, true
	}
	kind := takeCalloutKind(bq)
	fmt.Fprintf(w, `<div class="callout callout-%s p-4 my-4 border-l-4 rounded-r-lg %s">`, kind, calloutClasses[kind])
	return ast.GoToNext, true
}

// takeCalloutKind 读取并移除标记，默认 info
func takeCalloutKind(bq *ast.BlockQuote) string {
	para, ok := ast.GetFirstChild(bq).(*ast.Paragraph)
	if !ok {
		return "info"
	}
	text, ok := ast.GetFirstChild(para).(*ast.Text)
	if !ok {
		return "info"
	}
	literal := string(text.Literal)
	if !strings.HasPrefix(literal, "[!") {
		return "info"
	}
	end := strings.Index(literal, "]")
	if end < 0 {
		return "info"
	}
	kind := strings.ToLower(literal[2:end])
	if _, known := calloutClasses[kind]; !known {
		return "info"
	}
	text.Literal = []byte(strings.TrimLeft(literal[end+1:], " \t\n"))
	return kind
}

// nodeText 收集节点下的纯文本
func nodeText(node ast.Node) string {
	var buf bytes.Buffer
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch leaf := n.(type) {
		case *ast.Text:
			buf.Write(leaf.Literal)
		case *ast.Code:
			buf.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return buf.String()
}

func containsImage(p *ast.Paragraph) bool {
	for _, child := range p.GetChildren() {
		if _, ok := child.(*ast.Image); ok {
			return true
		}
	}
	return false
}

func inTightList(p *ast.Paragraph) bool {
	item := p.GetParent()
	if item == nil {
		return false
	}
	list, ok := item.GetParent().(*ast.List)
	return ok && list.Tight
}

// safeHref 只允许站内、锚点、http(s) 与 mailto 链接
func safeHref(href string) string {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"/", "#", "http://", "https://", "mailto:"} {
		if strings.HasPrefix(lower, prefix) {
			return href
		}
	}
	if !strings.Contains(lower, ":") {
		return href // 相对路径
	}
	return "#"
}
