package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
)

// Association is one learned feature effect to materialize as an
// ASSOCIATED_WITH edge from the user to a feature.
type Association struct {
	FeatureKey string
	EffectMean float64
	EffectSD   float64
	SupportN   int
	Target     string
	LagDays    int
}

// MaterializeAssociations merges ASSOCIATED_WITH edges for a freshly trained
// model. Keyed on (user, feature, target, lag), so re-running after a retrain
// updates effects in place rather than accumulating duplicates.
func MaterializeAssociations(
	ctx context.Context,
	client *neo4jdb.Client,
	log *logger.Logger,
	userID uuid.UUID,
	modelVersion string,
	assocs []Association,
) error {
	if client == nil || client.Driver == nil {
		return nil
	}
	if userID == uuid.Nil {
		return fmt.Errorf("neo4j association sync: missing userID")
	}
	if len(assocs) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	recs := make([]map[string]any, 0, len(assocs))
	for _, a := range assocs {
		if a.FeatureKey == "" {
			continue
		}
		target := a.Target
		if target == "" {
			target = "mood"
		}
		recs = append(recs, map[string]any{
			"feature_key":   a.FeatureKey,
			"effect_mean":   a.EffectMean,
			"effect_sd":     a.EffectSD,
			"support_n":     int64(a.SupportN),
			"target":        target,
			"lag_days":      int64(a.LagDays),
			"model_version": modelVersion,
			"updated_at":    now,
		})
	}
	if len(recs) == 0 {
		return nil
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (u:User {id: $user_id})
WITH u
UNWIND $assocs AS a
MERGE (f:Feature {key: a.feature_key})
MERGE (u)-[r:ASSOCIATED_WITH {target: a.target, lag_days: a.lag_days}]->(f)
SET r.effect_mean = a.effect_mean,
    r.effect_sd = a.effect_sd,
    r.support_n = a.support_n,
    r.model_version = a.model_version,
    r.updated_at = a.updated_at
`, map[string]any{"user_id": userID.String(), "assocs": recs})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if log != nil {
			log.Error("neo4j association sync failed", "user_id", userID.String(), "error", err)
		}
		return fmt.Errorf("neo4j association sync: %w", err)
	}
	return nil
}
