package mood

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type FeatureMentionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.FeatureMention) error
	GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.FeatureMention, error)
}

type featureMentionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeatureMentionRepo(db *gorm.DB, baseLog *logger.Logger) FeatureMentionRepo {
	return &featureMentionRepo{db: db, log: baseLog.With("repo", "FeatureMentionRepo")}
}

func (r *featureMentionRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.FeatureMention) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_id"}, {Name: "feature_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"confidence", "extractor_version", "mentioned_at", "updated_at"}),
		}).
		Create(&rows).Error
}

func (r *featureMentionRepo) GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.FeatureMention, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.FeatureMention
	if len(entryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("entry_id IN ?", entryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
