package content

import (
	"slices"
	"strings"

	"github.com/user/homepage/internal/model"
)

// Library 启动时加载的全部站点内容，加载后只读
type Library struct {
	Books      []model.Book
	Movies     []model.Movie
	BucketList []model.BucketListItem
	Posts      []*model.Post
	Profile    *model.Profile

	bySlug map[string]*model.Post
}

// NewLibrary 组装内容库：文章排序并建立 slug 索引，nil 参数替换为空值
func NewLibrary(books []model.Book, movies []model.Movie, bucketList []model.BucketListItem, posts []*model.Post, profile *model.Profile) *Library {
	if books == nil {
		books = []model.Book{}
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	if bucketList == nil {
		bucketList = []model.BucketListItem{}
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	if profile == nil {
		profile = &model.Profile{}
	}

	SortPosts(posts)
	bySlug := make(map[string]*model.Post, len(posts))
	for _, p := range posts {
		bySlug[p.Slug] = p
	}

	return &Library{
		Books:      books,
		Movies:     movies,
		BucketList: bucketList,
		Posts:      posts,
		Profile:    profile,
		bySlug:     bySlug,
	}
}

// Post 按 slug 查找文章
func (l *Library) Post(slug string) (*model.Post, bool) {
	p, ok := l.bySlug[slug]
	return p, ok
}

// LatestPosts 最新 n 篇文章
func (l *Library) LatestPosts(n int) []*model.Post {
	if n > len(l.Posts) {
		n = len(l.Posts)
	}
	return l.Posts[:n]
}

// PostsByTag 按标签筛选（大小写不敏感），空标签返回全部
func (l *Library) PostsByTag(tag string) []*model.Post {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return l.Posts
	}
	result := make([]*model.Post, 0)
	for _, p := range l.Posts {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// Tags 所有标签，按字母排序去重
func (l *Library) Tags() []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, p := range l.Posts {
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, t)
		}
	}
	slices.SortFunc(tags, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return tags
}
