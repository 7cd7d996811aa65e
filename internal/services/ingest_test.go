package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	moodrepos "github.com/yungbote/moodtrace-backend/internal/data/repos/mood"
	"github.com/yungbote/moodtrace-backend/internal/data/repos/testutil"
)

func newIngestForTest(t *testing.T) (IngestService, moodrepos.BaselineStatRepo, uuid.UUID) {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	// The service opens its own transaction on the db it is given; handing
	// it the test transaction makes that a savepoint, so everything rolls
	// back with the test.
	entryRepo := moodrepos.NewEntryRepo(tx, log)
	selfRepo := moodrepos.NewSelfReportRepo(tx, log)
	contextRepo := moodrepos.NewContextPointRepo(tx, log)
	affectRepo := moodrepos.NewAffectPointRepo(tx, log)
	featureRepo := moodrepos.NewFeatureRepo(tx, log)
	mentionRepo := moodrepos.NewFeatureMentionRepo(tx, log)
	baselineRepo := moodrepos.NewBaselineStatRepo(tx, log)

	svc := NewIngestService(tx, log, nil, 0, 0,
		entryRepo, selfRepo, contextRepo, affectRepo, featureRepo, mentionRepo, baselineRepo)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
	return svc, baselineRepo, u.ID
}

func TestRecordLabeledEntryRetryConverges(t *testing.T) {
	svc, baselineRepo, userID := newIngestForTest(t)
	ctx := context.Background()

	input := LabeledEntryInput{
		EntryID:    uuid.New(),
		OccurredAt: time.Now().UTC().Add(-time.Hour),
		RawText:    "rough night, better morning",
		Mood:       6,
		Features: []FeatureMentionInput{
			{Type: "activity", Name: "Running", Confidence: 0.9},
		},
	}

	first, err := svc.RecordLabeledEntry(ctx, userID, input)
	if err != nil {
		t.Fatalf("first RecordLabeledEntry: %v", err)
	}

	statsAfterFirst, err := baselineRepo.GetByUserAndMetric(ctx, nil, userID, "mood")
	if err != nil || statsAfterFirst == nil {
		t.Fatalf("load mood baseline: err=%v row=%v", err, statsAfterFirst)
	}
	if statsAfterFirst.Count != 1 {
		t.Fatalf("mood baseline count after first call = %d, want 1", statsAfterFirst.Count)
	}

	// Same entry id again, as a client retrying after a mirror failure would
	// send it. The call must succeed and leave baselines untouched.
	second, err := svc.RecordLabeledEntry(ctx, userID, input)
	if err != nil {
		t.Fatalf("retried RecordLabeledEntry: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("retry returned entry %s, want %s", second.ID, first.ID)
	}

	statsAfterRetry, err := baselineRepo.GetByUserAndMetric(ctx, nil, userID, "mood")
	if err != nil || statsAfterRetry == nil {
		t.Fatalf("reload mood baseline: err=%v row=%v", err, statsAfterRetry)
	}
	if statsAfterRetry.Count != 1 {
		t.Fatalf("mood baseline count after retry = %d, want 1", statsAfterRetry.Count)
	}
	if math.Abs(statsAfterRetry.Mean-statsAfterFirst.Mean) > 1e-9 {
		t.Fatalf("retry changed baseline mean: %v -> %v", statsAfterFirst.Mean, statsAfterRetry.Mean)
	}
}

func TestRecordLabeledEntryRejectsBadInput(t *testing.T) {
	svc, _, userID := newIngestForTest(t)
	ctx := context.Background()

	if _, err := svc.RecordLabeledEntry(ctx, userID, LabeledEntryInput{
		OccurredAt: time.Now().UTC(),
		Mood:       0,
	}); err == nil {
		t.Fatal("mood outside 1..10 must be rejected")
	}
	if _, err := svc.RecordLabeledEntry(ctx, userID, LabeledEntryInput{Mood: 5}); err == nil {
		t.Fatal("missing occurred_at must be rejected")
	}
}
