package collection

import (
	"net/url"
	"strconv"
)

// Category 当前查看的集合
type Category string

const (
	CategoryBooks      Category = "books"
	CategoryMovies     Category = "movies"
	CategoryBucketList Category = "bucket-list"
)

// DefaultCategory 页面默认打开愿望清单
const DefaultCategory = CategoryBucketList

// Categories 标签页顺序
var Categories = []Category{CategoryBucketList, CategoryBooks, CategoryMovies}

// ParseCategory 解析分类，未知值返回 false
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryBooks, CategoryMovies, CategoryBucketList:
		return Category(s), true
	}
	return "", false
}

// Paginated 书籍与电影分页，愿望清单整列展示
func (c Category) Paginated() bool {
	return c == CategoryBooks || c == CategoryMovies
}

// State 页面瞬时状态，值类型，每次操作整体替换
type State struct {
	Category Category `json:"category"`
	Query    string   `json:"query"`
	Page     int      `json:"page"`
}

// NewState 默认状态
func NewState() State {
	return State{Category: DefaultCategory, Page: 1}
}

// WithCategory 切换分类：清空搜索词并回到第 1 页
func (s State) WithCategory(c Category) State {
	return State{Category: c, Query: "", Page: 1}
}

// WithQuery 修改搜索词：回到第 1 页
func (s State) WithQuery(q string) State {
	s.Query = q
	s.Page = 1
	return s
}

// WithPage 跳转页码（不做钳制）
func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// Clamp 将页码钳制到有效范围
func (s State) Clamp(pageCount int) State {
	s.Page = ClampPage(s.Page, pageCount)
	return s
}

// StateFromQuery 从 URL 参数还原状态（tab、q、page），非法值回落到默认
func StateFromQuery(values url.Values) State {
	s := NewState()
	if c, ok := ParseCategory(values.Get("tab")); ok {
		s = s.WithCategory(c)
	}
	s = s.WithQuery(values.Get("q"))
	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		s = s.WithPage(page)
	}
	return s
}

// Values 序列化为 URL 参数，省略默认值
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Category != DefaultCategory {
		v.Set("tab", string(s.Category))
	}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// URL 生成 /collections 链接
func (s State) URL() string {
	if q := s.Values().Encode(); q != "" {
		return "/collections?" + q
	}
	return "/collections"
}
