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

type CalibrationModelRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CalibrationModel, error)
	// Replace overwrites the user's model wholesale. Concurrent retrains
	// race and the last write wins; retraining is an idempotent whole-object
	// replace, so no lock is taken.
	Replace(ctx context.Context, tx *gorm.DB, row *types.CalibrationModel) error
}

type calibrationModelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalibrationModelRepo(db *gorm.DB, baseLog *logger.Logger) CalibrationModelRepo {
	return &calibrationModelRepo{db: db, log: baseLog.With("repo", "CalibrationModelRepo")}
}

func (r *calibrationModelRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CalibrationModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.CalibrationModel
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *calibrationModelRepo) Replace(ctx context.Context, tx *gorm.DB, row *types.CalibrationModel) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"version", "lambda", "residual_sd",
				"predictor_keys", "weights", "weight_vars",
				"training_n", "trained_at", "updated_at",
			}),
		}).
		Create(row).Error
}
