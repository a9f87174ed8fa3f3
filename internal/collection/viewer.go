package collection

import (
	"slices"

	"github.com/user/homepage/internal/model"
)

// RankedItem 带序号的愿望清单条目，序号为展示列表中的位置
type RankedItem struct {
	Rank int                  `json:"rank"`
	Item model.BucketListItem `json:"item"`
}

// Tab 标签页信息
type Tab struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Count    int      `json:"count"`
	Active   bool     `json:"active"`
	URL      string   `json:"url"`
}

// PageLink 分页按钮
type PageLink struct {
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

// View 一次渲染所需的全部数据
type View struct {
	State         State         `json:"state"`
	Books         []model.Book  `json:"books,omitempty"`
	Movies        []model.Movie `json:"movies,omitempty"`
	BucketList    []RankedItem  `json:"bucketList,omitempty"`
	FilteredCount int           `json:"filteredCount"`
	PageCount     int           `json:"pageCount"`
	Stats         Stats         `json:"stats"`
	Tabs          []Tab         `json:"tabs"`
}

// Empty 当前分类筛选后无结果
func (v View) Empty() bool {
	return v.FilteredCount == 0
}

// ShowPagination 仅分页分类且多于一页时展示
func (v View) ShowPagination() bool {
	return v.State.Category.Paginated() && v.PageCount > 1
}

// HasPrev 是否有上一页
func (v View) HasPrev() bool {
	return v.State.Page > 1
}

// HasNext 是否有下一页
func (v View) HasNext() bool {
	return v.State.Page < v.PageCount
}

// PrevURL 上一页链接
func (v View) PrevURL() string {
	return v.State.WithPage(max(1, v.State.Page-1)).URL()
}

// NextURL 下一页链接
func (v View) NextURL() string {
	return v.State.WithPage(min(v.PageCount, v.State.Page+1)).URL()
}

// Pages 所有页码按钮
func (v View) Pages() []PageLink {
	links := make([]PageLink, 0, v.PageCount)
	for i := 1; i <= v.PageCount; i++ {
		links = append(links, PageLink{Number: i, URL: v.State.WithPage(i).URL(), Current: i == v.State.Page})
	}
	return links
}

// Viewer 持有三个只读集合，根据 State 生成 View
type Viewer struct {
	books      []model.Book
	movies     []model.Movie
	bucketList []model.BucketListItem
	stats      Stats
}

// NewViewer 复制输入并预先排序、统计；之后不再修改
func NewViewer(books []model.Book, movies []model.Movie, bucketList []model.BucketListItem) *Viewer {
	return &Viewer{
		books:      SortBooks(books),
		movies:     SortMovies(movies),
		bucketList: slices.Clone(bucketList),
		stats: Stats{
			Books:      ComputeBookStats(books),
			Movies:     ComputeMovieStats(movies),
			BucketList: ComputeBucketListStats(bucketList),
		},
	}
}

// Stats 全量统计
func (v *Viewer) Stats() Stats {
	return v.stats
}

// Books 排序后的全部书籍
func (v *Viewer) Books() []model.Book {
	return slices.Clone(v.books)
}

// Movies 排序后的全部电影
func (v *Viewer) Movies() []model.Movie {
	return slices.Clone(v.movies)
}

// BucketList 原始顺序的愿望清单
func (v *Viewer) BucketList() []model.BucketListItem {
	return slices.Clone(v.bucketList)
}

// FilteredCount 当前状态下筛选后的条目数
func (v *Viewer) FilteredCount(s State) int {
	switch s.Category {
	case CategoryBooks:
		return len(FilterBooks(v.books, s.Query))
	case CategoryMovies:
		return len(FilterMovies(v.movies, s.Query))
	default:
		return len(FilterBucketList(v.bucketList, s.Query))
	}
}

// Clamp 按筛选结果钳制页码；愿望清单不分页，固定第 1 页
func (v *Viewer) Clamp(s State) State {
	if !s.Category.Paginated() {
		return s.WithPage(1)
	}
	return s.Clamp(PageCount(v.FilteredCount(s), PageSize))
}

// View 生成视图：筛选 -> 排序 -> 分页。越界页码得到空列表
func (v *Viewer) View(s State) View {
	if _, ok := ParseCategory(string(s.Category)); !ok {
		s = s.WithCategory(DefaultCategory)
	}

	view := View{State: s, Stats: v.stats, Tabs: v.tabs(s.Category)}

	// 排序在构造时已完成；筛选保持相对顺序，因此等价于先筛选后排序
	switch s.Category {
	case CategoryBooks:
		filtered := FilterBooks(v.books, s.Query)
		view.FilteredCount = len(filtered)
		view.PageCount = PageCount(len(filtered), PageSize)
		view.Books = Paginate(filtered, s.Page, PageSize)
	case CategoryMovies:
		filtered := FilterMovies(v.movies, s.Query)
		view.FilteredCount = len(filtered)
		view.PageCount = PageCount(len(filtered), PageSize)
		view.Movies = Paginate(filtered, s.Page, PageSize)
	case CategoryBucketList:
		filtered := FilterBucketList(v.bucketList, s.Query)
		view.FilteredCount = len(filtered)
		view.PageCount = 1
		view.BucketList = make([]RankedItem, 0, len(filtered))
		for i, item := range filtered {
			view.BucketList = append(view.BucketList, RankedItem{Rank: i + 1, Item: item})
		}
	}

	return view
}

func (v *Viewer) tabs(active Category) []Tab {
	counts := map[Category]int{
		CategoryBucketList: v.stats.BucketList.Total,
		CategoryBooks:      v.stats.Books.Total,
		CategoryMovies:     v.stats.Movies.Total,
	}
	tabs := make([]Tab, 0, len(Categories))
	for _, c := range Categories {
		tabs = append(tabs, Tab{
			Category: c,
			Label:    c.Label(),
			Icon:     c.Icon(),
			Count:    counts[c],
			Active:   c == active,
			URL:      NewState().WithCategory(c).URL(),
		})
	}
	return tabs
}

// Label 标签文案
func (c Category) Label() string {
	switch c {
	case CategoryBooks:
		return "Books"
	case CategoryMovies:
		return "Movies"
	default:
		return "Bucket List"
	}
}

// Icon 标签图标
func (c Category) Icon() string {
	switch c {
	case CategoryBooks:
		return "📚"
	case CategoryMovies:
		return "🎬"
	default:
		return "🎯"
	}
}
