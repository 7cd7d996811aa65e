package mood

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/moodtrace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
)

func TestEntryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEntryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "entryrepo@example.com")

	now := time.Now().UTC()
	first := testutil.SeedEntry(t, ctx, tx, u.ID, now.Add(-48*time.Hour))
	second := testutil.SeedEntry(t, ctx, tx, u.ID, now)

	if got, err := repo.GetByID(ctx, tx, second.ID); err != nil || got.ID != second.ID {
		t.Fatalf("GetByID: err=%v", err)
	}
	if _, err := repo.GetByID(ctx, tx, uuid.New()); err == nil {
		t.Fatal("GetByID on missing id must error")
	}

	if rows, err := repo.GetByUserID(ctx, tx, u.ID, 0); err != nil || len(rows) != 2 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(rows))
	} else if rows[0].ID != second.ID {
		t.Fatal("GetByUserID must order newest first")
	}

	prev, err := repo.GetLatestBefore(ctx, tx, u.ID, *second)
	if err != nil || prev == nil || prev.ID != first.ID {
		t.Fatalf("GetLatestBefore: err=%v prev=%v", err, prev)
	}
	if prev, err := repo.GetLatestBefore(ctx, tx, u.ID, *first); err != nil || prev != nil {
		t.Fatalf("GetLatestBefore on oldest entry: err=%v prev=%v", err, prev)
	}

	if err := second.SetEmbeddingVector([]float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("SetEmbeddingVector: %v", err)
	}
	if err := repo.UpdateEmbedding(ctx, tx, second); err != nil {
		t.Fatalf("UpdateEmbedding: %v", err)
	}
	got, err := repo.GetByID(ctx, tx, second.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.EmbeddingDim != 4 || len(got.EmbeddingVector()) != 4 {
		t.Fatalf("embedding not persisted: dim=%d", got.EmbeddingDim)
	}
}

func TestEntryRepoCreateIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEntryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "entryretry@example.com")

	row := &types.MoodEntry{
		ID:         uuid.New(),
		UserID:     u.ID,
		OccurredAt: time.Now().UTC(),
		RawText:    "first attempt",
		Source:     "journal",
	}
	if _, err := repo.Create(ctx, tx, []*types.MoodEntry{row}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Same id again, as a client retry would send it.
	again := &types.MoodEntry{
		ID:         row.ID,
		UserID:     u.ID,
		OccurredAt: row.OccurredAt,
		RawText:    "retry attempt",
		Source:     "journal",
	}
	if _, err := repo.Create(ctx, tx, []*types.MoodEntry{again}); err != nil {
		t.Fatalf("retried Create must not conflict: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, row.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.RawText != "first attempt" {
		t.Fatalf("retry must not overwrite the original row, got %q", got.RawText)
	}
	if rows, err := repo.GetByUserID(ctx, tx, u.ID, 0); err != nil || len(rows) != 1 {
		t.Fatalf("expected a single persisted entry: err=%v len=%d", err, len(rows))
	}
}
