package interaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/venturematch/backend/internal/domain"
	"github.com/venturematch/backend/internal/pkg/logger"
)

type MatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, match *types.Match) (*types.Match, error)
	// FindForPair looks the pair up in both orientations and returns
	// (nil, nil) when no match exists.
	FindForPair(ctx context.Context, tx *gorm.DB, profileA, profileB uuid.UUID) (*types.Match, error)
	ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Match, error)
}

type matchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMatchRepo(db *gorm.DB, baseLog *logger.Logger) MatchRepo {
	repoLog := baseLog.With("repo", "MatchRepo")
	return &matchRepo{db: db, log: repoLog}
}

func (mr *matchRepo) Create(ctx context.Context, tx *gorm.DB, match *types.Match) (*types.Match, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Create(match).Error; err != nil {
		return nil, err
	}
	return match, nil
}

func (mr *matchRepo) FindForPair(ctx context.Context, tx *gorm.DB, profileA, profileB uuid.UUID) (*types.Match, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.Match
	if err := transaction.WithContext(ctx).
		Where("(founder_id = ? AND investor_id = ?) OR (founder_id = ? AND investor_id = ?)",
			profileA, profileB, profileB, profileA).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (mr *matchRepo) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Match, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Match
	if err := transaction.WithContext(ctx).
		Where("founder_id = ? OR investor_id = ?", profileID, profileID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
