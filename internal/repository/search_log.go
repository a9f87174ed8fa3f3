package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/utils"
)

type SearchLogRepository struct {
	db *gorm.DB
}

func NewSearchLogRepository(db *gorm.DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

// Log 记录搜索日志并累加热搜计数
func (r *SearchLogRepository) Log(ctx context.Context, keyword, ipHash string, kinds []string, hits int) error {
	entry := &model.SearchLog{
		Keyword:   keyword,
		IPHash:    ipHash,
		Kinds:     pq.StringArray(kinds),
		Hits:      hits,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Exec(`
			INSERT INTO trending_keywords (keyword, count, last_searched_at)
			VALUES ($1, 1, NOW())
			ON CONFLICT (keyword) DO UPDATE SET
				count = trending_keywords.count + 1,
				last_searched_at = EXCLUDED.last_searched_at
		`, keyword).Error
	})
}

// GetTrending 获取热搜关键词，hours > 0 时按时间窗口从原始日志统计
func (r *SearchLogRepository) GetTrending(ctx context.Context, hours, limit int) ([]*model.TrendingKeyword, error) {
	cacheKey := fmt.Sprintf("trending:%d:%d", hours, limit)

	return utils.GetOrLoad(cacheKey, 30*time.Minute, func() ([]*model.TrendingKeyword, error) {
		keywords := make([]*model.TrendingKeyword, 0)
		db := r.db.WithContext(ctx)

		var err error
		if hours > 0 {
			err = db.Raw(`
				SELECT keyword, COUNT(*) as count, MAX(created_at) as last_searched_at
				FROM search_logs
				WHERE created_at > NOW() - INTERVAL '1 hour' * $1
				GROUP BY keyword
				ORDER BY count DESC
				LIMIT $2
			`, hours, limit).Scan(&keywords).Error
		} else {
			err = db.Model(&model.TrendingKeyword{}).
				Order("count DESC").
				Limit(limit).
				Scan(&keywords).Error
		}
		return keywords, err
	})
}

// CountSince 某时间之后的搜索次数
func (r *SearchLogRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SearchLog{}).Where("created_at > ?", since).Count(&count).Error
	return count, err
}

// DeleteOldKeywords 清理超过指定天数未搜索的关键词
func (r *SearchLogRepository) DeleteOldKeywords(ctx context.Context, days int) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM trending_keywords
		WHERE last_searched_at < NOW() - INTERVAL '1 day' * $1
	`, days)
	return result.RowsAffected, result.Error
}

// DeleteOldLogs 清理超过指定天数的原始搜索日志
func (r *SearchLogRepository) DeleteOldLogs(ctx context.Context, days int) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM search_logs
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`, days)
	return result.RowsAffected, result.Error
}
