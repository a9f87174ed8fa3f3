package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/user/homepage/internal/markdown"
	"github.com/user/homepage/internal/model"
)

// yamlFrontMatter 只接受 --- 包裹的 YAML
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// loadPosts 读取博客目录下的 .md 文件并渲染；目录不存在时没有文章
func loadPosts(ctx context.Context, dir string, renderer *markdown.Renderer, includeDrafts bool) ([]*model.Post, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取博客目录失败: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		files = append(files, e.Name())
	}

	posts := make([]*model.Post, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("读取文章 %s 失败: %w", name, err)
			}
			post, err := ParsePost(strings.TrimSuffix(name, ".md"), data, renderer)
			if err != nil {
				return fmt.Errorf("文章 %s: %w", name, err)
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if p.Draft && !includeDrafts {
			continue
		}
		result = append(result, p)
	}
	SortPosts(result)
	return result, nil
}

// ParsePost 解析 front matter 并渲染正文
func ParsePost(slug string, data []byte, renderer *markdown.Renderer) (*model.Post, error) {
	meta, body, err := parseFrontMatter(data)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("front matter 无效: %w", err)
	}
	date, err := model.ParseDate(meta.Date)
	if err != nil {
		return nil, err
	}

	doc, err := renderer.RenderDocument(body)
	if err != nil {
		return nil, err
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.Post{
		Slug:           slug,
		Title:          meta.Title,
		Date:           date,
		Description:    meta.Description,
		Tags:           tags,
		Cover:          meta.Cover,
		Draft:          meta.Draft,
		HTML:           doc.HTML,
		PlainText:      doc.PlainText,
		Excerpt:        doc.Excerpt,
		TOC:            doc.TOC,
		ReadingMinutes: doc.ReadingMinutes,
	}, nil
}

// parseFrontMatter 文件须以 YAML front matter 开头
func parseFrontMatter(data []byte) (model.PostMeta, []byte, error) {
	var meta model.PostMeta
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	body, err := frontmatter.MustParse(bytes.NewReader(data), &meta, yamlFrontMatter)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return meta, nil, errors.New("缺少 front matter")
	}
	if err != nil {
		return meta, nil, fmt.Errorf("解析 front matter 失败: %w", err)
	}
	return meta, body, nil
}

// SortPosts 日期倒序，同日按标题
func SortPosts(posts []*model.Post) {
	slices.SortStableFunc(posts, func(a, b *model.Post) int {
		if c := b.Date.Compare(a.Date.Time); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	})
}
