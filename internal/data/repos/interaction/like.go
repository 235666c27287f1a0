package interaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/venturematch/backend/internal/domain"
	"github.com/venturematch/backend/internal/pkg/logger"
)

type LikeRepo interface {
	// Create inserts a like, ignoring the (sender_id, recipient_id)
	// conflict. The bool reports whether a new row was written; on a
	// conflict the existing row is returned.
	Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, bool, error)
	// Find returns (nil, nil) when no like exists for the ordered pair.
	Find(ctx context.Context, tx *gorm.DB, senderID, recipientID uuid.UUID) (*types.Like, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, likeIDs []uuid.UUID) ([]*types.Like, error)
	// ListByRecipient orders most-recent-first; limit <= 0 means all.
	ListByRecipient(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, limit int) ([]*types.Like, error)
	ListBySender(ctx context.Context, tx *gorm.DB, senderID uuid.UUID) ([]*types.Like, error)
	CountForRecipients(ctx context.Context, tx *gorm.DB, recipientIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type likeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo {
	repoLog := baseLog.With("repo", "LikeRepo")
	return &likeRepo{db: db, log: repoLog}
}

func (lr *likeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sender_id"}, {Name: "recipient_id"}},
			DoNothing: true,
		}).
		Create(like)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return like, true, nil
	}

	// Conflict path: another like for this ordered pair already exists.
	existing, err := lr.Find(ctx, transaction, like.SenderID, like.RecipientID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (lr *likeRepo) Find(ctx context.Context, tx *gorm.DB, senderID, recipientID uuid.UUID) (*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Like
	if err := transaction.WithContext(ctx).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (lr *likeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, likeIDs []uuid.UUID) ([]*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Like
	if len(likeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", likeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *likeRepo) ListByRecipient(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, limit int) ([]*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	query := transaction.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.Like
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *likeRepo) ListBySender(ctx context.Context, tx *gorm.DB, senderID uuid.UUID) ([]*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Like
	if err := transaction.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *likeRepo) CountForRecipients(ctx context.Context, tx *gorm.DB, recipientIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	counts := make(map[uuid.UUID]int64, len(recipientIDs))
	if len(recipientIDs) == 0 {
		return counts, nil
	}

	type row struct {
		RecipientID uuid.UUID
		Count       int64
	}
	var rows []row
	if err := transaction.WithContext(ctx).
		Model(&types.Like{}).
		Select("recipient_id, COUNT(*) AS count").
		Where("recipient_id IN ?", recipientIDs).
		Group("recipient_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.RecipientID] = r.Count
	}
	return counts, nil
}
