package mood

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type FeatureRepo interface {
	UpsertByKey(ctx context.Context, tx *gorm.DB, rows []*types.Feature) ([]*types.Feature, error)
	GetByKeys(ctx context.Context, tx *gorm.DB, keys []string) ([]*types.Feature, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Feature, error)
}

type featureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeatureRepo(db *gorm.DB, baseLog *logger.Logger) FeatureRepo {
	return &featureRepo{db: db, log: baseLog.With("repo", "FeatureRepo")}
}

// UpsertByKey merges features on their canonical key and returns the stored
// rows (with ids) in key order.
func (r *featureRepo) UpsertByKey(ctx context.Context, tx *gorm.DB, rows []*types.Feature) ([]*types.Feature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Feature{}, nil
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		keys = append(keys, row.Key)
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	return r.GetByKeys(ctx, transaction, keys)
}

func (r *featureRepo) GetByKeys(ctx context.Context, tx *gorm.DB, keys []string) ([]*types.Feature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Feature
	if len(keys) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("key IN ?", keys).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *featureRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Feature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Feature
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
