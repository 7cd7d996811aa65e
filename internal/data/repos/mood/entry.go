package mood

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/moodtrace-backend/internal/domain"
	pkgerrors "github.com/yungbote/moodtrace-backend/internal/pkg/errors"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type EntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.MoodEntry) ([]*types.MoodEntry, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MoodEntry, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MoodEntry, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MoodEntry, error)
	GetLatestBefore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, before types.MoodEntry) (*types.MoodEntry, error)
	UpdateEmbedding(ctx context.Context, tx *gorm.DB, row *types.MoodEntry) error
}

type entryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntryRepo(db *gorm.DB, baseLog *logger.Logger) EntryRepo {
	return &entryRepo{db: db, log: baseLog.With("repo", "EntryRepo")}
}

func (r *entryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.MoodEntry) ([]*types.MoodEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.MoodEntry{}, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *entryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MoodEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.MoodEntry
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *entryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.MoodEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MoodEntry
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

func (r *entryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MoodEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.MoodEntry
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetLatestBefore returns the user's newest entry strictly older than the
// given one, used to maintain the time-ordered NEXT chain in the graph.
func (r *entryRepo) GetLatestBefore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, before types.MoodEntry) (*types.MoodEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.MoodEntry
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND occurred_at < ? AND id <> ?", userID, before.OccurredAt, before.ID).
		Order("occurred_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *entryRepo) UpdateEmbedding(ctx context.Context, tx *gorm.DB, row *types.MoodEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.ID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.MoodEntry{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"embedding":     row.Embedding,
			"embedding_dim": row.EmbeddingDim,
		}).Error
}
