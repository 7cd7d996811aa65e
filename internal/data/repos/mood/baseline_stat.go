package mood

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type BaselineStatRepo interface {
	GetByUserAndMetric(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metric string) (*types.BaselineStat, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BaselineStat, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.BaselineStat) error
}

type baselineStatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBaselineStatRepo(db *gorm.DB, baseLog *logger.Logger) BaselineStatRepo {
	return &baselineStatRepo{db: db, log: baseLog.With("repo", "BaselineStatRepo")}
}

func (r *baselineStatRepo) GetByUserAndMetric(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metric string) (*types.BaselineStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.BaselineStat
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND metric = ?", userID, metric).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *baselineStatRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BaselineStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BaselineStat
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *baselineStatRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.BaselineStat) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.UserID == uuid.Nil || row.Metric == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "metric"}},
			DoUpdates: clause.AssignmentColumns([]string{"mean", "sd", "count", "last_updated_at", "updated_at"}),
		}).
		Create(row).Error
}
