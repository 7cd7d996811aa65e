package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperrors "github.com/yungbote/moodtrace-backend/internal/pkg/errors"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
)

// RetrievalHit is one similar prior entry from the vector index, joined with
// its self-report label (if any), the mood of the chronologically next entry,
// the feature keys it mentions, and the user's learned associations on those
// features. Mood is nil for unlabeled entries.
type RetrievalHit struct {
	EntryID      uuid.UUID            `json:"entry_id"`
	OccurredAt   time.Time            `json:"occurred_at"`
	Similarity   float64              `json:"similarity"`
	Mood         *float64             `json:"mood,omitempty"`
	NextMood     *float64             `json:"next_mood,omitempty"`
	FeatureKeys  []string             `json:"feature_keys,omitempty"`
	Associations []FeatureAssociation `json:"associations,omitempty"`
}

// FeatureAssociation is one ASSOCIATED_WITH edge from the querying user to a
// feature mentioned by the hit, carrying the trained effect estimate.
type FeatureAssociation struct {
	FeatureKey string  `json:"feature_key"`
	EffectMean float64 `json:"effect_mean"`
	EffectSD   float64 `json:"effect_sd"`
	SupportN   int     `json:"support_n"`
}

type SimilarEntriesQuery struct {
	UserID         uuid.UUID
	Embedding      []float64
	ExpectedDim    int
	ExcludeEntryID uuid.UUID
	Limit          int
	WithinDays     int
}

// QuerySimilarEntries runs an ANN cosine search on entry_embedding_idx scoped
// to the user's entries inside the WithinDays window, excluding the query
// entry itself. The index search is global, so it over-fetches and filters;
// results come back ordered by similarity descending.
func QuerySimilarEntries(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, q SimilarEntriesQuery) ([]RetrievalHit, error) {
	if client == nil || client.Driver == nil {
		return nil, nil
	}
	if q.UserID == uuid.Nil {
		return nil, fmt.Errorf("neo4j similar entries: missing userID")
	}
	if len(q.Embedding) == 0 {
		return nil, apperrors.ErrMissingInputs
	}
	if q.ExpectedDim > 0 && len(q.Embedding) != q.ExpectedDim {
		return nil, fmt.Errorf("query embedding has %d dims, index expects %d: %w",
			len(q.Embedding), q.ExpectedDim, apperrors.ErrDimensionMismatch)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 25
	}
	withinDays := q.WithinDays
	if withinDays <= 0 {
		withinDays = 180
	}
	minUnix := time.Now().UTC().AddDate(0, 0, -withinDays).Unix()

	excludeID := ""
	if q.ExcludeEntryID != uuid.Nil {
		excludeID = q.ExcludeEntryID.String()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
CALL db.index.vector.queryNodes('entry_embedding_idx', $k, $embedding)
YIELD node, score
WHERE node.user_id = $user_id
  AND node.id <> $exclude_id
  AND node.occurred_unix >= $min_unix
WITH node, score
ORDER BY score DESC
LIMIT $limit
OPTIONAL MATCH (node)-[:NEXT]->(next:Entry)
OPTIONAL MATCH (node)-[:MENTIONS]->(f:Feature)
OPTIONAL MATCH (:User {id: $user_id})-[assoc:ASSOCIATED_WITH]->(f)
RETURN node.id AS id,
       node.occurred_at AS occurred_at,
       score AS similarity,
       node.mood AS mood,
       next.mood AS next_mood,
       collect(DISTINCT f.key) AS feature_keys,
       collect(DISTINCT CASE WHEN assoc IS NULL THEN NULL ELSE {
         feature_key: f.key,
         effect_mean: assoc.effect_mean,
         effect_sd:   assoc.effect_sd,
         support_n:   assoc.support_n
       } END) AS associations
`, map[string]any{
			// Over-fetch because the index scan is cross-user.
			"k":          int64(limit * 4),
			"embedding":  q.Embedding,
			"user_id":    q.UserID.String(),
			"exclude_id": excludeID,
			"min_unix":   minUnix,
			"limit":      int64(limit),
		})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}

		hits := make([]RetrievalHit, 0, len(records))
		for _, rec := range records {
			hit := RetrievalHit{}

			if v, ok := rec.Get("id"); ok {
				if s, ok := v.(string); ok {
					if id, err := uuid.Parse(s); err == nil {
						hit.EntryID = id
					}
				}
			}
			if hit.EntryID == uuid.Nil {
				continue
			}
			if v, ok := rec.Get("occurred_at"); ok {
				if s, ok := v.(string); ok {
					if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
						hit.OccurredAt = ts
					}
				}
			}
			if v, ok := rec.Get("similarity"); ok {
				if f, ok := v.(float64); ok {
					hit.Similarity = f
				}
			}
			if v, ok := rec.Get("mood"); ok {
				hit.Mood = asFloatPtr(v)
			}
			if v, ok := rec.Get("next_mood"); ok {
				hit.NextMood = asFloatPtr(v)
			}
			if v, ok := rec.Get("feature_keys"); ok {
				if list, ok := v.([]any); ok {
					for _, item := range list {
						if s, ok := item.(string); ok && s != "" {
							hit.FeatureKeys = append(hit.FeatureKeys, s)
						}
					}
				}
			}
			if v, ok := rec.Get("associations"); ok {
				if list, ok := v.([]any); ok {
					for _, item := range list {
						m, ok := item.(map[string]any)
						if !ok {
							continue
						}
						assoc := FeatureAssociation{}
						if s, ok := m["feature_key"].(string); ok {
							assoc.FeatureKey = s
						}
						if assoc.FeatureKey == "" {
							continue
						}
						if p := asFloatPtr(m["effect_mean"]); p != nil {
							assoc.EffectMean = *p
						}
						if p := asFloatPtr(m["effect_sd"]); p != nil {
							assoc.EffectSD = *p
						}
						if n, ok := m["support_n"].(int64); ok {
							assoc.SupportN = int(n)
						}
						hit.Associations = append(hit.Associations, assoc)
					}
				}
			}

			hits = append(hits, hit)
		}
		return hits, nil
	})
	if err != nil {
		if log != nil {
			log.Error("neo4j similar entries query failed", "user_id", q.UserID.String(), "error", err)
		}
		return nil, fmt.Errorf("neo4j similar entries: %w", err)
	}

	hits, _ := out.([]RetrievalHit)
	return hits, nil
}

// asFloatPtr tolerates Neo4j returning labels as either int64 or float64.
func asFloatPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int64:
		f := float64(n)
		return &f
	default:
		return nil
	}
}
