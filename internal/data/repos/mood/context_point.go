package mood

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type ContextPointRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ContextPoint) error
	GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.ContextPoint, error)
}

type contextPointRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContextPointRepo(db *gorm.DB, baseLog *logger.Logger) ContextPointRepo {
	return &contextPointRepo{db: db, log: baseLog.With("repo", "ContextPointRepo")}
}

func (r *contextPointRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ContextPoint) error {
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
			Columns:   []clause.Column{{Name: "entry_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sleep_hours", "sleep_quality", "medication_taken", "energy_level", "updated_at"}),
		}).
		Create(row).Error
}

func (r *contextPointRepo) GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.ContextPoint, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContextPoint
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
