package service

import (
	"context"
	"time"

	"github.com/user/homepage/internal/logging"
)

// 数据保留期限（天）
const (
	SearchLogRetentionDays = 90
	KeywordRetentionDays   = 30
	cleanupInterval        = 24 * time.Hour
)

// Cleaner 过期数据清理
type Cleaner interface {
	DeleteOldLogs(ctx context.Context, days int) (int64, error)
	DeleteOldKeywords(ctx context.Context, days int) (int64, error)
}

// CleanupService 清理服务
type CleanupService struct {
	cleaner  Cleaner
	interval time.Duration
	done     chan struct{}
}

// NewCleanupService 创建清理服务
func NewCleanupService(cleaner Cleaner) *CleanupService {
	return &CleanupService{
		cleaner:  cleaner,
		interval: cleanupInterval,
		done:     make(chan struct{}),
	}
}

// Start 启动时先执行一次，之后每 24 小时执行；ctx 取消后退出
func (s *CleanupService) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		s.RunOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// Done Start 的 goroutine 退出后关闭
func (s *CleanupService) Done() <-chan struct{} {
	return s.done
}

// RunOnce 执行一轮清理，失败只记录日志
func (s *CleanupService) RunOnce(ctx context.Context) {
	log := logging.With().Str("component", "cleanup").Logger()
	log.Info().Msg("开始清理过期数据")

	// 1. 清理超过 90 天的原始搜索日志
	affected, err := s.cleaner.DeleteOldLogs(ctx, SearchLogRetentionDays)
	if err != nil {
		log.Error().Err(err).Msg("清理搜索日志失败")
	} else if affected > 0 {
		log.Info().Int64("rows", affected).Msgf("已清理超过 %d 天的搜索日志", SearchLogRetentionDays)
	}

	// 2. 清理超过 30 天未搜索的热搜关键词
	affected, err = s.cleaner.DeleteOldKeywords(ctx, KeywordRetentionDays)
	if err != nil {
		log.Error().Err(err).Msg("清理热搜关键词失败")
	} else if affected > 0 {
		log.Info().Int64("rows", affected).Msgf("已清理超过 %d 天未搜索的热搜关键词", KeywordRetentionDays)
	}
}
