package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/user/homepage/internal/logging"
)

// gormLogger 把 gorm 日志写入 zerolog，带上请求 ID
type gormLogger struct {
	level          gormlogger.LogLevel
	slowThreshold  time.Duration
	ignoreNotFound bool
}

func newGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *gormLogger {
	return &gormLogger{level: level, slowThreshold: slowThreshold, ignoreNotFound: true}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logging.Ctx(ctx).Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logging.Ctx(ctx).Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logging.Ctx(ctx).Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace 失败、慢查询分别记 error / warn；Info 级别下其余语句记 debug
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !(l.ignoreNotFound && errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		logging.Ctx(ctx).Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("SQL 执行失败")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logging.Ctx(ctx).Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("慢查询")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logging.Ctx(ctx).Debug().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("SQL")
	}
}
