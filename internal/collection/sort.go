package collection

import (
	"slices"
	"sync"

	"github.com/user/homepage/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	// collate.Collator 不是并发安全的
	titleMu       sync.Mutex
	titleCollator = collate.New(language.English)
)

// CompareTitles 按英文区域规则比较标题
func CompareTitles(a, b string) int {
	titleMu.Lock()
	defer titleMu.Unlock()
	return titleCollator.CompareString(a, b)
}

// compareDateDesc 有日期的排在前面，日期越新越靠前；都没有时返回 0
func compareDateDesc(a, b *model.Date) int {
	switch {
	case a != nil && b != nil:
		return b.Compare(a.Time)
	case a != nil:
		return -1
	case b != nil:
		return 1
	default:
		return 0
	}
}

// CompareBooks 书籍排序：完成日期倒序 > （均未完成时）开始日期倒序 > 书名
func CompareBooks(a, b model.Book) int {
	if c := compareDateDesc(a.DateCompleted, b.DateCompleted); c != 0 {
		return c
	}
	if a.DateCompleted == nil && b.DateCompleted == nil {
		if c := compareDateDesc(a.DateStarted, b.DateStarted); c != 0 {
			return c
		}
	}
	return CompareTitles(a.Title, b.Title)
}

// CompareMovies 电影排序：观看日期倒序 > 片名
func CompareMovies(a, b model.Movie) int {
	if c := compareDateDesc(a.DateWatched, b.DateWatched); c != 0 {
		return c
	}
	return CompareTitles(a.Title, b.Title)
}

// SortBooks 返回排序后的新切片
func SortBooks(books []model.Book) []model.Book {
	out := slices.Clone(books)
	slices.SortStableFunc(out, CompareBooks)
	return out
}

// SortMovies 返回排序后的新切片
func SortMovies(movies []model.Movie) []model.Movie {
	out := slices.Clone(movies)
	slices.SortStableFunc(out, CompareMovies)
	return out
}
