// Package content 从内容目录加载收藏数据、博客文章与个人资料。
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/user/homepage/internal/logging"
	"github.com/user/homepage/internal/markdown"
	"github.com/user/homepage/internal/model"
)

// 内容目录中的文件
const (
	BooksFile      = "data/books.json"
	MoviesFile     = "data/movies.json"
	BucketListFile = "data/bucket-list.json"
	ProfileFile    = "about.yaml"
	BlogDir        = "blog"
)

var validate = validator.New()

// Options 加载选项
type Options struct {
	// 是否包含草稿（开发环境）
	IncludeDrafts bool
}

// dataFile 数据文件结构 {"items": [...]}
type dataFile[T any] struct {
	Items []T `json:"items"`
}

// Load 并发加载内容目录；任一文件出错即返回
func Load(ctx context.Context, dir string, renderer *markdown.Renderer, opts Options) (*Library, error) {
	var (
		books      []model.Book
		movies     []model.Movie
		bucketList []model.BucketListItem
		posts      []*model.Post
		profile    *model.Profile
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		books, err = loadItems(filepath.Join(dir, BooksFile), func(b model.Book) int { return b.ID })
		return err
	})
	g.Go(func() (err error) {
		movies, err = loadItems(filepath.Join(dir, MoviesFile), func(m model.Movie) int { return m.ID })
		return err
	})
	g.Go(func() (err error) {
		bucketList, err = loadItems(filepath.Join(dir, BucketListFile), func(i model.BucketListItem) int { return i.ID })
		return err
	})
	g.Go(func() (err error) {
		profile, err = loadProfile(filepath.Join(dir, ProfileFile))
		return err
	})
	g.Go(func() (err error) {
		posts, err = loadPosts(ctx, filepath.Join(dir, BlogDir), renderer, opts.IncludeDrafts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	lib := NewLibrary(books, movies, bucketList, posts, profile)

	logging.Info().
		Int("books", len(lib.Books)).
		Int("movies", len(lib.Movies)).
		Int("bucket_list", len(lib.BucketList)).
		Int("posts", len(lib.Posts)).
		Str("dir", dir).
		Msg("内容加载完成")

	return lib, nil
}

// loadItems 读取 JSON 数据文件，逐条校验并检查 id 唯一
func loadItems[T any](path string, id func(T) int) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}

	var file dataFile[T]
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	if file.Items == nil {
		file.Items = []T{}
	}

	seen := make(map[int]bool, len(file.Items))
	for i, item := range file.Items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%s 第 %d 条记录无效: %w", path, i+1, err)
		}
		key := id(item)
		if seen[key] {
			return nil, fmt.Errorf("%s 中 id %d 重复", path, key)
		}
		seen[key] = true
	}
	return file.Items, nil
}

// loadProfile 读取 about.yaml；文件不存在时返回空资料
func loadProfile(path string) (*model.Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Str("path", path).Msg("未找到个人资料文件")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}

	var profile model.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	if err := validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("%s 无效: %w", path, err)
	}
	return &profile, nil
}
