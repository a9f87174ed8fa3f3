package model

// 搜索结果类型
const (
	KindPost       = "post"
	KindBook       = "book"
	KindMovie      = "movie"
	KindBucketList = "bucket-list"
)

// SearchHit 站内搜索结果
type SearchHit struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	URL      string `json:"url"`
	Image    string `json:"image,omitempty"`
}
