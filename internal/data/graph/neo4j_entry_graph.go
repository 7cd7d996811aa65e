package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
)

// EnsureEntrySchema creates the uniqueness constraints and the entry embedding
// vector index. Best-effort: restricted users may not be allowed to run DDL,
// and the engine still works without the mirror.
func EnsureEntrySchema(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, embeddingDim int) error {
	if client == nil || client.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	stmts := []string{
		`CREATE CONSTRAINT moodtrace_user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		`CREATE CONSTRAINT moodtrace_entry_id_unique IF NOT EXISTS FOR (e:Entry) REQUIRE e.id IS UNIQUE`,
		`CREATE CONSTRAINT moodtrace_feature_key_unique IF NOT EXISTS FOR (f:Feature) REQUIRE f.key IS UNIQUE`,
	}
	if embeddingDim > 0 {
		stmts = append(stmts, fmt.Sprintf(`
CREATE VECTOR INDEX entry_embedding_idx IF NOT EXISTS
FOR (e:Entry) ON (e.embedding)
OPTIONS {indexConfig: {`+"`vector.dimensions`"+`: %d, `+"`vector.similarity_function`"+`: 'cosine'}}
`, embeddingDim))
	}

	for _, stmt := range stmts {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "error", err)
			}
			continue
		}
		_, _ = res.Consume(ctx)
	}
	return nil
}

// UpsertEntryGraph mirrors one persisted entry into the graph: the owning
// User node, the Entry node with its embedding and mood label, a NEXT edge
// from the chronologically previous entry, and MENTIONS edges to any
// extracted features. Idempotent per entry id.
func UpsertEntryGraph(
	ctx context.Context,
	client *neo4jdb.Client,
	log *logger.Logger,
	entry *types.MoodEntry,
	label *types.SelfReportLabel,
	prevEntryID uuid.UUID,
	features []*types.Feature,
	mentions []*types.FeatureMention,
) error {
	if client == nil || client.Driver == nil {
		return nil
	}
	if entry == nil || entry.ID == uuid.Nil || entry.UserID == uuid.Nil {
		return fmt.Errorf("neo4j entry graph sync: missing entry or user id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	entryProps := map[string]any{
		"id":            entry.ID.String(),
		"user_id":       entry.UserID.String(),
		"occurred_at":   entry.OccurredAt.UTC().Format(time.RFC3339Nano),
		"occurred_unix": entry.OccurredAt.UTC().Unix(),
		"source":        entry.Source,
		"synced_at":     now,
	}
	if label != nil {
		entryProps["mood"] = label.Mood
	}

	embedding := entry.EmbeddingVector()

	confByFeature := make(map[uuid.UUID]float64, len(mentions))
	for _, m := range mentions {
		if m == nil {
			continue
		}
		confByFeature[m.FeatureID] = m.Confidence
	}
	featureRecs := make([]map[string]any, 0, len(features))
	for _, f := range features {
		if f == nil || f.ID == uuid.Nil || f.Key == "" {
			continue
		}
		featureRecs = append(featureRecs, map[string]any{
			"id":         f.ID.String(),
			"key":        f.Key,
			"type":       f.Type,
			"name":       f.Name,
			"confidence": confByFeature[f.ID],
			"synced_at":  now,
		})
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (u:User {id: $user_id})
MERGE (e:Entry {id: $entry.id})
SET e += $entry
MERGE (u)-[:WROTE]->(e)
`, map[string]any{"user_id": entry.UserID.String(), "entry": entryProps})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		if len(embedding) > 0 {
			res, err := tx.Run(ctx, `
MATCH (e:Entry {id: $id})
CALL db.create.setNodeVectorProperty(e, 'embedding', $embedding)
`, map[string]any{"id": entry.ID.String(), "embedding": embedding})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		if prevEntryID != uuid.Nil && prevEntryID != entry.ID {
			res, err := tx.Run(ctx, `
MATCH (prev:Entry {id: $prev_id})
MATCH (e:Entry {id: $id})
MERGE (prev)-[n:NEXT]->(e)
SET n.synced_at = $synced_at
`, map[string]any{"prev_id": prevEntryID.String(), "id": entry.ID.String(), "synced_at": now})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		if len(featureRecs) > 0 {
			res, err := tx.Run(ctx, `
UNWIND $features AS f
MERGE (feat:Feature {key: f.key})
SET feat.id = f.id,
    feat.type = f.type,
    feat.name = f.name,
    feat.synced_at = f.synced_at
WITH f, feat
MATCH (e:Entry {id: $entry_id})
MERGE (e)-[m:MENTIONS]->(feat)
SET m.confidence = f.confidence,
    m.synced_at = f.synced_at
`, map[string]any{"features": featureRecs, "entry_id": entry.ID.String()})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		return nil, nil
	})
	if err != nil {
		if log != nil {
			log.Error("neo4j entry graph sync failed", "entry_id", entry.ID.String(), "error", err)
		}
		return fmt.Errorf("neo4j entry graph sync: %w", err)
	}
	return nil
}
