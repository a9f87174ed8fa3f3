package model

// BookStatus 阅读状态
type BookStatus string

const (
	BookReading    BookStatus = "reading"
	BookCompleted  BookStatus = "completed"
	BookWantToRead BookStatus = "want-to-read"
)

// Label 展示用文案（want-to-read -> want to read）
func (s BookStatus) Label() string {
	switch s {
	case BookReading:
		return "reading"
	case BookCompleted:
		return "completed"
	case BookWantToRead:
		return "want to read"
	default:
		return string(s)
	}
}

// BucketListStatus 愿望清单状态
type BucketListStatus string

const (
	BucketCompleted BucketListStatus = "completed"
	BucketTodo      BucketListStatus = "todo"
)

// Book 书籍
type Book struct {
	ID            int        `json:"id" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	Author        string     `json:"author" validate:"required"`
	CoverImage    string     `json:"coverImage,omitempty"`
	Rating        int        `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Status        BookStatus `json:"status" validate:"required,oneof=reading completed want-to-read"`
	DateStarted   *Date      `json:"dateStarted,omitempty"`
	DateCompleted *Date      `json:"dateCompleted,omitempty"`
	GoodreadsUrl  string     `json:"goodreadsUrl" validate:"required,url"`
	Favorite      bool       `json:"favorite,omitempty"`
}

// Movie 电影
type Movie struct {
	ID          int    `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Director    string `json:"director" validate:"required"`
	PosterImage string `json:"posterImage,omitempty"`
	Rating      int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Year        int    `json:"year,omitempty" validate:"omitempty,min=1870,max=2100"`
	DateWatched *Date  `json:"dateWatched,omitempty"`
	Favorite    bool   `json:"favorite,omitempty"`
}

// BucketListItem 愿望清单条目
type BucketListItem struct {
	ID          int              `json:"id" validate:"required"`
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description"`
	Status      BucketListStatus `json:"status" validate:"required,oneof=completed todo"`
}

// IsCompleted 是否已完成
func (i BucketListItem) IsCompleted() bool {
	return i.Status == BucketCompleted
}
