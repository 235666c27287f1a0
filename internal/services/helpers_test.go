package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/venturematch/backend/internal/domain"
	pkgerrors "github.com/venturematch/backend/internal/pkg/errors"
	"github.com/venturematch/backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func newInvestor(name string, attrs types.InvestorAttributes, location string, verified bool) *types.Profile {
	p := &types.Profile{
		ID:            uuid.New(),
		Role:          types.RoleInvestor,
		DisplayName:   name,
		SoftVerified:  verified,
		InvestorAttrs: types.NewInvestorAttrs(attrs),
	}
	if location != "" {
		p.Location = strPtr(location)
	}
	return p
}

func newFounder(name string, attrs types.FounderAttributes, location string, verified bool) *types.Profile {
	p := &types.Profile{
		ID:           uuid.New(),
		Role:         types.RoleFounder,
		DisplayName:  name,
		SoftVerified: verified,
		FounderAttrs: types.NewFounderAttrs(attrs),
	}
	if location != "" {
		p.Location = strPtr(location)
	}
	return p
}

// fakeProfileRepo keeps profiles in insertion order, which stands in for
// the store's created_at ordering.
type fakeProfileRepo struct {
	mu              sync.Mutex
	profiles        []*types.Profile
	listByRoleCalls int
}

func (f *fakeProfileRepo) add(profiles ...*types.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles = append(f.profiles, profiles...)
}

func (f *fakeProfileRepo) remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.profiles[:0]
	for _, p := range f.profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.profiles = kept
}

func (f *fakeProfileRepo) Create(_ context.Context, _ *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error) {
	f.add(profiles...)
	return profiles, nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, _ *gorm.DB, profileID uuid.UUID) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ID == profileID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %s: %w", profileID, pkgerrors.ErrNotFound)
}

func (f *fakeProfileRepo) GetByIDs(_ context.Context, _ *gorm.DB, profileIDs []uuid.UUID) ([]*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]struct{}, len(profileIDs))
	for _, id := range profileIDs {
		want[id] = struct{}{}
	}
	var out []*types.Profile
	for _, p := range f.profiles {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListByRole(_ context.Context, _ *gorm.DB, role types.Role, excludeIDs []uuid.UUID) ([]*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listByRoleCalls++
	excluded := make(map[uuid.UUID]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*types.Profile
	for _, p := range f.profiles {
		if p.Role != role {
			continue
		}
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, _ *gorm.DB, profile *types.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.profiles {
		if p.ID == profile.ID {
			f.profiles[i] = profile
			return nil
		}
	}
	return fmt.Errorf("profile %s: %w", profile.ID, pkgerrors.ErrNotFound)
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes []*types.Like
	clock time.Time
}

func (f *fakeLikeRepo) add(senderID, recipientID uuid.UUID) *types.Like {
	like, _, _ := f.Create(context.Background(), nil, &types.Like{
		SenderID:    senderID,
		RecipientID: recipientID,
	})
	return like
}

func (f *fakeLikeRepo) Create(_ context.Context, _ *gorm.DB, like *types.Like) (*types.Like, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.likes {
		if existing.SenderID == like.SenderID && existing.RecipientID == like.RecipientID {
			return existing, false, nil
		}
	}
	f.clock = f.clock.Add(time.Second)
	stored := &types.Like{
		ID:          uuid.New(),
		SenderID:    like.SenderID,
		RecipientID: like.RecipientID,
		Note:        like.Note,
		CreatedAt:   f.clock,
	}
	f.likes = append(f.likes, stored)
	return stored, true, nil
}

func (f *fakeLikeRepo) Find(_ context.Context, _ *gorm.DB, senderID, recipientID uuid.UUID) (*types.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, like := range f.likes {
		if like.SenderID == senderID && like.RecipientID == recipientID {
			return like, nil
		}
	}
	return nil, nil
}

func (f *fakeLikeRepo) GetByIDs(_ context.Context, _ *gorm.DB, likeIDs []uuid.UUID) ([]*types.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]struct{}, len(likeIDs))
	for _, id := range likeIDs {
		want[id] = struct{}{}
	}
	var out []*types.Like
	for _, like := range f.likes {
		if _, ok := want[like.ID]; ok {
			out = append(out, like)
		}
	}
	return out, nil
}

func (f *fakeLikeRepo) ListByRecipient(_ context.Context, _ *gorm.DB, recipientID uuid.UUID, limit int) ([]*types.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Like
	for i := len(f.likes) - 1; i >= 0; i-- {
		if f.likes[i].RecipientID != recipientID {
			continue
		}
		out = append(out, f.likes[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeLikeRepo) ListBySender(_ context.Context, _ *gorm.DB, senderID uuid.UUID) ([]*types.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Like
	for _, like := range f.likes {
		if like.SenderID == senderID {
			out = append(out, like)
		}
	}
	return out, nil
}

func (f *fakeLikeRepo) CountForRecipients(_ context.Context, _ *gorm.DB, recipientIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[uuid.UUID]int64, len(recipientIDs))
	want := make(map[uuid.UUID]struct{}, len(recipientIDs))
	for _, id := range recipientIDs {
		want[id] = struct{}{}
	}
	for _, like := range f.likes {
		if _, ok := want[like.RecipientID]; ok {
			counts[like.RecipientID]++
		}
	}
	return counts, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches []*types.Match
}

func (f *fakeMatchRepo) add(founderID, investorID uuid.UUID) *types.Match {
	f.mu.Lock()
	defer f.mu.Unlock()
	match := &types.Match{
		ID:         uuid.New(),
		FounderID:  founderID,
		InvestorID: investorID,
		Status:     types.MatchStatusActive,
	}
	f.matches = append(f.matches, match)
	return match
}

func (f *fakeMatchRepo) Create(_ context.Context, _ *gorm.DB, match *types.Match) (*types.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.matches {
		if existing.FounderID == match.FounderID && existing.InvestorID == match.InvestorID {
			return nil, errors.New("duplicate key value violates unique constraint \"idx_match_pair\"")
		}
	}
	match.ID = uuid.New()
	f.matches = append(f.matches, match)
	return match, nil
}

func (f *fakeMatchRepo) FindForPair(_ context.Context, _ *gorm.DB, profileA, profileB uuid.UUID) (*types.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.matches {
		if (m.FounderID == profileA && m.InvestorID == profileB) ||
			(m.FounderID == profileB && m.InvestorID == profileA) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchRepo) ListByProfile(_ context.Context, _ *gorm.DB, profileID uuid.UUID) ([]*types.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Match
	for _, m := range f.matches {
		if m.FounderID == profileID || m.InvestorID == profileID {
			out = append(out, m)
		}
	}
	return out, nil
}

// failingCache errors on every operation so tests can assert that cache
// outages degrade to recomputation instead of surfacing.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Get(context.Context, string) (string, bool, error) { return "", false, errCacheDown }
func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errCacheDown
}
func (failingCache) Delete(context.Context, ...string) error        { return errCacheDown }
func (failingCache) DeletePattern(context.Context, string) error    { return errCacheDown }
func (failingCache) PushFront(context.Context, string, string, int64, time.Duration) error {
	return errCacheDown
}
func (failingCache) Range(context.Context, string, int64, int64) ([]string, error) {
	return nil, errCacheDown
}
func (failingCache) Close() error { return nil }
