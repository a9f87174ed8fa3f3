package model

import (
	"time"

	"github.com/lib/pq"
)

// SearchLog 搜索日志
type SearchLog struct {
	ID        int            `json:"id" db:"id"`
	Keyword   string         `json:"keyword" db:"keyword" gorm:"index"`
	IPHash    string         `json:"ip_hash" db:"ip_hash"`
	Kinds     pq.StringArray `json:"kinds" db:"kinds" gorm:"type:text[]"` // 命中结果的内容类型
	Hits      int            `json:"hits" db:"hits"`
	CreatedAt time.Time      `json:"created_at" db:"created_at" gorm:"index"`
}

// TrendingKeyword 热搜关键词
type TrendingKeyword struct {
	Keyword        string    `json:"keyword" db:"keyword" gorm:"primaryKey"`
	Count          int       `json:"count" db:"count"`
	LastSearchedAt time.Time `json:"last_searched_at" db:"last_searched_at"`
}

// 留言状态
const (
	FeedbackPending  = "pending"
	FeedbackRead     = "read"
	FeedbackArchived = "archived"
)

// Feedback 联系表单留言
type Feedback struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required,max=100"`
	Email     string    `json:"email" db:"email" validate:"required,email,max=255"`
	Content   string    `json:"content" db:"content" gorm:"type:text" validate:"required,min=5,max=5000"`
	PageURL   string    `json:"page_url" db:"page_url" validate:"omitempty,max=500"`
	IPHash    string    `json:"-" db:"ip_hash"`
	Status    string    `json:"status" db:"status" gorm:"index;default:pending"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsValidFeedbackStatus 校验留言状态
func IsValidFeedbackStatus(status string) bool {
	switch status {
	case FeedbackPending, FeedbackRead, FeedbackArchived:
		return true
	}
	return false
}
