package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venturematch/backend/internal/data/repos"
	types "github.com/venturematch/backend/internal/domain"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/pkg/logger"
)

// AttributeUpdate carries optional scoring-attribute changes. Only the
// attribute object matching the profile's role is accepted.
type AttributeUpdate struct {
	Location       *string                   `json:"location"`
	SoftVerified   *bool                     `json:"soft_verified"`
	ManualReviewed *bool                     `json:"manual_reviewed"`
	Investor       *types.InvestorAttributes `json:"investor_attributes"`
	Founder        *types.FounderAttributes  `json:"founder_attributes"`
}

// ProfileService is a thin read/update surface over the Profile Store.
// Full profile CRUD lives elsewhere; this exists so attribute updates can
// invalidate the derived caches that depend on them.
type ProfileService interface {
	Get(ctx context.Context, profileID uuid.UUID) (*types.Profile, error)
	UpdateAttributes(ctx context.Context, profileID uuid.UUID, update AttributeUpdate) (*types.Profile, error)
}

type profileService struct {
	log          *logger.Logger
	profileRepo  repos.ProfileRepo
	feed         FeedService
	storeTimeout time.Duration
}

func NewProfileService(baseLog *logger.Logger, profileRepo repos.ProfileRepo, feed FeedService, storeTimeout time.Duration) ProfileService {
	serviceLog := baseLog.With("service", "ProfileService")
	return &profileService{
		log:          serviceLog,
		profileRepo:  profileRepo,
		feed:         feed,
		storeTimeout: storeTimeout,
	}
}

func (ps *profileService) Get(ctx context.Context, profileID uuid.UUID) (*types.Profile, error) {
	storeCtx, cancel := withStoreTimeout(ctx, ps.storeTimeout)
	defer cancel()

	profile, err := ps.profileRepo.GetByID(storeCtx, nil, profileID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return profile, nil
}

func (ps *profileService) UpdateAttributes(ctx context.Context, profileID uuid.UUID, update AttributeUpdate) (*types.Profile, error) {
	storeCtx, cancel := withStoreTimeout(ctx, ps.storeTimeout)
	defer cancel()

	profile, err := ps.profileRepo.GetByID(storeCtx, nil, profileID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}

	if update.Investor != nil && profile.Role != types.RoleInvestor {
		return nil, fmt.Errorf("investor attributes on a %s profile: %w", profile.Role, pkgerrors.ErrInvalidArgument)
	}
	if update.Founder != nil && profile.Role != types.RoleFounder {
		return nil, fmt.Errorf("founder attributes on a %s profile: %w", profile.Role, pkgerrors.ErrInvalidArgument)
	}

	if update.Location != nil {
		profile.Location = update.Location
	}
	if update.SoftVerified != nil {
		profile.SoftVerified = *update.SoftVerified
	}
	if update.ManualReviewed != nil {
		profile.ManualReviewed = *update.ManualReviewed
	}
	if update.Investor != nil {
		profile.InvestorAttrs = types.NewInvestorAttrs(*update.Investor)
	}
	if update.Founder != nil {
		profile.FounderAttrs = types.NewFounderAttrs(*update.Founder)
	}

	if err := ps.profileRepo.Update(storeCtx, nil, profile); err != nil {
		return nil, storeErr("update profile", err)
	}

	// Scoring inputs changed: drop this profile's feeds and every cached
	// score pair involving it.
	ps.feed.InvalidateProfile(ctx, profileID)

	return profile, nil
}
