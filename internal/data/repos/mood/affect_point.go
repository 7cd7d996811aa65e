package mood

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type AffectPointRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.AffectPoint) error
	GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.AffectPoint, error)
}

type affectPointRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAffectPointRepo(db *gorm.DB, baseLog *logger.Logger) AffectPointRepo {
	return &affectPointRepo{db: db, log: baseLog.With("repo", "AffectPointRepo")}
}

func (r *affectPointRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.AffectPoint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.EntryID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "entry_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"valence", "arousal", "phq9_estimate", "gad7_estimate",
				"mood_z", "anxiety_z", "model_version", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *affectPointRepo) GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.AffectPoint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AffectPoint
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
