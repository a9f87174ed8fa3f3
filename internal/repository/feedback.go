package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/utils"
)

const feedbackCountsKey = "feedback:counts"

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create 保存留言，状态固定为 pending
func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	f.Status = model.FeedbackPending
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return err
	}
	utils.CacheDelete(feedbackCountsKey)
	return nil
}

// List 获取留言列表（管理后台用），status 为空时不过滤
func (r *FeedbackRepository) List(ctx context.Context, status string, limit, offset int) ([]*model.Feedback, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Feedback{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	feedbacks := make([]*model.Feedback, 0)
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&feedbacks).Error
	return feedbacks, total, err
}

// UpdateStatus 更新留言状态，返回是否有记录被修改
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Feedback{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	utils.CacheDelete(feedbackCountsKey)
	return result.RowsAffected > 0, nil
}

// CountByStatus 各状态留言数，缓存 5 分钟
func (r *FeedbackRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return utils.GetOrLoad(feedbackCountsKey, 5*time.Minute, func() (map[string]int64, error) {
		var rows []struct {
			Status string
			Count  int64
		}
		err := r.db.WithContext(ctx).Model(&model.Feedback{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}

		counts := map[string]int64{
			model.FeedbackPending:  0,
			model.FeedbackRead:     0,
			model.FeedbackArchived: 0,
		}
		for _, row := range rows {
			counts[row.Status] = row.Count
		}
		return counts, nil
	})
}
