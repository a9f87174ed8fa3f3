package collection

import (
	"math"

	"github.com/user/homepage/internal/model"
)

// BookStats 书籍统计
type BookStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Reading    int `json:"reading"`
	WantToRead int `json:"wantToRead"`
	Favorites  int `json:"favorites"`
}

// MovieStats 电影统计
type MovieStats struct {
	Total     int `json:"total"`
	Favorites int `json:"favorites"`
}

// BucketListStats 愿望清单统计
type BucketListStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Todo           int `json:"todo"`
	CompletionRate int `json:"completionRate"`
}

// Stats 全量统计，与筛选条件无关
type Stats struct {
	Books      BookStats       `json:"books"`
	Movies     MovieStats      `json:"movies"`
	BucketList BucketListStats `json:"bucketList"`
}

// ComputeBookStats 统计书籍
func ComputeBookStats(books []model.Book) BookStats {
	s := BookStats{Total: len(books)}
	for _, b := range books {
		switch b.Status {
		case model.BookCompleted:
			s.Completed++
		case model.BookReading:
			s.Reading++
		case model.BookWantToRead:
			s.WantToRead++
		}
		if b.Favorite {
			s.Favorites++
		}
	}
	return s
}

// ComputeMovieStats 统计电影
func ComputeMovieStats(movies []model.Movie) MovieStats {
	s := MovieStats{Total: len(movies)}
	for _, m := range movies {
		if m.Favorite {
			s.Favorites++
		}
	}
	return s
}

// ComputeBucketListStats 统计愿望清单，空列表完成率为 0
func ComputeBucketListStats(items []model.BucketListItem) BucketListStats {
	s := BucketListStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case model.BucketCompleted:
			s.Completed++
		case model.BucketTodo:
			s.Todo++
		}
	}
	s.CompletionRate = CompletionRate(s.Completed, s.Total)
	return s
}

// CompletionRate 百分比，四舍五入（.5 向上）
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(100*float64(completed)/float64(total) + 0.5))
}
