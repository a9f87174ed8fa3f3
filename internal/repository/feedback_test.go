package repository

import (
	"context"
	"testing"
	"time"

	"github.com/user/homepage/internal/model"
)

func TestFeedbackRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"Ann", "Bob", "Cid"} {
		f := &model.Feedback{
			Name:      name,
			Email:     name + "@example.com",
			Content:   "Hello there",
			Status:    model.FeedbackArchived,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if f.ID == 0 || f.Status != model.FeedbackPending {
			t.Errorf("created = %+v, expected id and pending status", f)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[model.FeedbackPending] != 3 || counts[model.FeedbackRead] != 0 {
		t.Errorf("counts = %v", counts)
	}

	updated, err := repo.UpdateStatus(ctx, 1, model.FeedbackRead)
	if err != nil || !updated {
		t.Fatalf("UpdateStatus(1) = %v, %v", updated, err)
	}
	updated, err = repo.UpdateStatus(ctx, 99, model.FeedbackRead)
	if err != nil || updated {
		t.Errorf("UpdateStatus(99) = %v, %v; expected false", updated, err)
	}

	// 写操作后统计缓存失效
	counts, err = repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[model.FeedbackPending] != 2 || counts[model.FeedbackRead] != 1 {
		t.Errorf("counts after update = %v", counts)
	}

	pending, total, err := repo.List(ctx, model.FeedbackPending, 1, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(pending) != 1 || pending[0].Name != "Cid" {
		t.Errorf("pending page = %d items, total %d, first %+v", len(pending), total, pending)
	}

	all, total, err := repo.List(ctx, "", 10, 0)
	if err != nil || total != 3 || len(all) != 3 {
		t.Errorf("List all = %d items, total %d, err %v", len(all), total, err)
	}
}
