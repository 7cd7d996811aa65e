package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:    uuid.New(),
		Email: email,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, occurredAt time.Time) *types.MoodEntry {
	tb.Helper()
	e := &types.MoodEntry{
		ID:         uuid.New(),
		UserID:     userID,
		OccurredAt: occurredAt,
		RawText:    "seeded entry",
		Source:     "journal",
	}
	if err := e.SetEmbeddingVector([]float64{0.1, 0.2, 0.3}); err != nil {
		tb.Fatalf("seed entry embedding: %v", err)
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed entry: %v", err)
	}
	return e
}

func SeedFeature(tb testing.TB, ctx context.Context, tx *gorm.DB, ftype, name string) *types.Feature {
	tb.Helper()
	f := &types.Feature{
		ID:   uuid.New(),
		Key:  types.CanonicalFeatureKey(ftype, name),
		Type: ftype,
		Name: types.NormalizeFeatureName(name),
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed feature: %v", err)
	}
	return f
}
