package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCleaner struct {
	logDays     []int
	keywordDays []int
	logErr      error
}

func (f *fakeCleaner) DeleteOldLogs(_ context.Context, days int) (int64, error) {
	f.logDays = append(f.logDays, days)
	return 3, f.logErr
}

func (f *fakeCleaner) DeleteOldKeywords(_ context.Context, days int) (int64, error) {
	f.keywordDays = append(f.keywordDays, days)
	return 0, nil
}

func TestCleanupService_RunOnce(t *testing.T) {
	cleaner := &fakeCleaner{logErr: errors.New("boom")}
	svc := NewCleanupService(cleaner)

	svc.RunOnce(context.Background())

	if len(cleaner.logDays) != 1 || cleaner.logDays[0] != SearchLogRetentionDays {
		t.Errorf("log retention calls = %v", cleaner.logDays)
	}
	// 日志清理失败不影响关键词清理
	if len(cleaner.keywordDays) != 1 || cleaner.keywordDays[0] != KeywordRetentionDays {
		t.Errorf("keyword retention calls = %v", cleaner.keywordDays)
	}
}

func TestCleanupService_StartStops(t *testing.T) {
	cleaner := &fakeCleaner{}
	svc := NewCleanupService(cleaner)
	svc.interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	cancel()

	select {
	case <-svc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
	if len(cleaner.logDays) != 1 {
		t.Errorf("expected one run at startup, got %d", len(cleaner.logDays))
	}
}
