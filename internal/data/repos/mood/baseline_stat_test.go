package mood

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/yungbote/moodtrace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
)

func TestBaselineStatRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewBaselineStatRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "baselinestatrepo@example.com")

	if got, err := repo.GetByUserAndMetric(ctx, tx, u.ID, "mood"); err != nil || got != nil {
		t.Fatalf("expected no stat yet: err=%v got=%v", err, got)
	}

	now := time.Now().UTC()
	row := &types.BaselineStat{
		UserID:        u.ID,
		Metric:        "mood",
		Mean:          5.0,
		SD:            1.2,
		Count:         3,
		LastUpdatedAt: now,
	}
	if err := repo.Upsert(ctx, tx, row); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Second upsert for the same (user, metric) updates in place.
	row2 := &types.BaselineStat{
		UserID:        u.ID,
		Metric:        "mood",
		Mean:          5.4,
		SD:            1.1,
		Count:         4,
		LastUpdatedAt: now.Add(24 * time.Hour),
	}
	if err := repo.Upsert(ctx, tx, row2); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.GetByUserAndMetric(ctx, tx, u.ID, "mood")
	if err != nil || got == nil {
		t.Fatalf("GetByUserAndMetric: err=%v", err)
	}
	if math.Abs(got.Mean-5.4) > 1e-9 || got.Count != 4 {
		t.Fatalf("upsert did not update: mean=%v count=%d", got.Mean, got.Count)
	}

	sleep := &types.BaselineStat{
		UserID:        u.ID,
		Metric:        "sleep_hours",
		Mean:          7.1,
		SD:            0.9,
		Count:         4,
		LastUpdatedAt: now,
	}
	if err := repo.Upsert(ctx, tx, sleep); err != nil {
		t.Fatalf("Upsert sleep: %v", err)
	}

	all, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(all))
	}
}
