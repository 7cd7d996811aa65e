package mood

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/moodtrace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodtrace-backend/internal/domain"
)

func TestCalibrationModelRepoReplace(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCalibrationModelRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "calmodelrepo@example.com")

	if got, err := repo.GetByUserID(ctx, tx, u.ID); err != nil || got != nil {
		t.Fatalf("expected no model yet: err=%v got=%v", err, got)
	}

	m := &types.CalibrationModel{
		UserID:     u.ID,
		Version:    "cal-1",
		Lambda:     1.0,
		ResidualSD: 0.8,
		TrainingN:  12,
		TrainedAt:  time.Now().UTC(),
	}
	keys := []string{"bias", "affect_valence", "affect_arousal", "sleep_hours", "sleep_quality", "energy_level", "medication_taken"}
	if err := m.SetVectors(keys, make([]float64, 7), make([]float64, 7)); err != nil {
		t.Fatalf("SetVectors: %v", err)
	}
	if err := repo.Replace(ctx, tx, m); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	// Wholesale overwrite: same user, new version and vectors.
	m2 := &types.CalibrationModel{
		UserID:     u.ID,
		Version:    "cal-2",
		Lambda:     0.5,
		ResidualSD: 0.6,
		TrainingN:  20,
		TrainedAt:  time.Now().UTC(),
	}
	keys2 := append(append([]string{}, keys...), "theme:work")
	w2 := make([]float64, 8)
	w2[7] = -0.4
	if err := m2.SetVectors(keys2, w2, make([]float64, 8)); err != nil {
		t.Fatalf("SetVectors: %v", err)
	}
	if err := repo.Replace(ctx, tx, m2); err != nil {
		t.Fatalf("Replace overwrite: %v", err)
	}

	got, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByUserID: err=%v", err)
	}
	if got.Version != "cal-2" || got.TrainingN != 20 {
		t.Fatalf("overwrite did not replace model: %+v", got)
	}
	if len(got.KeyList()) != 8 || len(got.WeightVector()) != 8 || len(got.WeightVarVector()) != 8 {
		t.Fatalf("vector round trip: keys=%d weights=%d vars=%d",
			len(got.KeyList()), len(got.WeightVector()), len(got.WeightVarVector()))
	}
}

func TestCalibrationModelVectorInvariant(t *testing.T) {
	m := &types.CalibrationModel{}
	if err := m.SetVectors([]string{"bias"}, []float64{1, 2}, []float64{0}); err == nil {
		t.Fatal("length mismatch must be rejected")
	}
}
