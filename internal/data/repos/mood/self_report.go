package mood

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type SelfReportRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.SelfReportLabel) error
	GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.SelfReportLabel, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SelfReportLabel, error)
}

type selfReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSelfReportRepo(db *gorm.DB, baseLog *logger.Logger) SelfReportRepo {
	return &selfReportRepo{db: db, log: baseLog.With("repo", "SelfReportRepo")}
}

func (r *selfReportRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SelfReportLabel) error {
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
			DoUpdates: clause.AssignmentColumns([]string{"mood", "valence", "arousal", "confidence", "updated_at"}),
		}).
		Create(row).Error
}

func (r *selfReportRepo) GetByEntryIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.SelfReportLabel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SelfReportLabel
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

func (r *selfReportRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SelfReportLabel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SelfReportLabel
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
