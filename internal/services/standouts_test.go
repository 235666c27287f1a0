package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/venturematch/backend/internal/cache"
	types "github.com/venturematch/backend/internal/domain"
)

type standoutsFixture struct {
	profiles  *fakeProfileRepo
	likes     *fakeLikeRepo
	matches   *fakeMatchRepo
	standouts StandoutsService
}

func newStandoutsFixture(t *testing.T) *standoutsFixture {
	t.Helper()
	log := testLogger(t)
	c := cache.NewMemoryCache()
	profiles := &fakeProfileRepo{}
	likes := &fakeLikeRepo{}
	matches := &fakeMatchRepo{}
	compat := NewCompatService(log, c)
	exclusion := NewExclusionService(log, likes, matches, time.Second)
	standouts := NewStandoutsService(log, profiles, exclusion, compat, time.Second)
	return &standoutsFixture{
		profiles:  profiles,
		likes:     likes,
		matches:   matches,
		standouts: standouts,
	}
}

// strongFounder scores 100 against strongInvestorViewer.
func strongFounder(name string) *types.Profile {
	return newFounder(name, types.FounderAttributes{
		FocusSectors:   []string{"fintech"},
		FocusStages:    []string{"seed"},
		RevenueRunRate: floatPtr(50_000),
	}, "Berlin", true)
}

func strongInvestorViewer() *types.Profile {
	return newInvestor("ivy", types.InvestorAttributes{
		FocusSectors: []string{"fintech"},
		FocusStages:  []string{"seed"},
		CheckSizeMin: int64Ptr(100_000),
		CheckSizeMax: int64Ptr(2_000_000),
	}, "Berlin", true)
}

func TestStandoutsFiltersBelowThreshold(t *testing.T) {
	fx := newStandoutsFixture(t)
	ctx := context.Background()

	viewer := strongInvestorViewer()
	strong := strongFounder("strong")
	// Verified only: scores 10, below the cut.
	weak := newFounder("weak", types.FounderAttributes{}, "", true)
	fx.profiles.add(viewer, strong, weak)

	standouts, err := fx.standouts.Standouts(ctx, viewer.ID, 10)
	if err != nil {
		t.Fatalf("Standouts: %v", err)
	}
	if len(standouts) != 1 {
		t.Fatalf("standouts: want=1 got=%d", len(standouts))
	}
	if standouts[0].Profile.ID != strong.ID {
		t.Fatalf("expected the strong founder, got %s", standouts[0].Profile.DisplayName)
	}
	if standouts[0].CompatibilityScore < 70 {
		t.Fatalf("standout score below threshold: %v", standouts[0].CompatibilityScore)
	}
	if len(standouts[0].MatchReasons) == 0 || len(standouts[0].MatchReasons) > 3 {
		t.Fatalf("match reasons: want 1..3, got %v", standouts[0].MatchReasons)
	}
}

func TestStandoutsEmptyWhenNobodyQualifies(t *testing.T) {
	fx := newStandoutsFixture(t)
	ctx := context.Background()

	viewer := strongInvestorViewer()
	fx.profiles.add(viewer)
	for i := 0; i < 3; i++ {
		fx.profiles.add(newFounder(fmt.Sprintf("f%d", i), types.FounderAttributes{}, "", false))
	}

	standouts, err := fx.standouts.Standouts(ctx, viewer.ID, 10)
	if err != nil {
		t.Fatalf("Standouts: %v", err)
	}
	if len(standouts) != 0 {
		t.Fatalf("standouts: want none, got %d", len(standouts))
	}
}

func TestStandoutsHonorsLimit(t *testing.T) {
	fx := newStandoutsFixture(t)
	ctx := context.Background()

	viewer := strongInvestorViewer()
	fx.profiles.add(viewer)
	for i := 0; i < 6; i++ {
		fx.profiles.add(strongFounder(fmt.Sprintf("s%d", i)))
	}

	standouts, err := fx.standouts.Standouts(ctx, viewer.ID, 4)
	if err != nil {
		t.Fatalf("Standouts: %v", err)
	}
	if len(standouts) != 4 {
		t.Fatalf("standouts: want=4 got=%d", len(standouts))
	}
}

func TestStandoutsExcludesInteractedProfiles(t *testing.T) {
	fx := newStandoutsFixture(t)
	ctx := context.Background()

	viewer := strongInvestorViewer()
	liked := strongFounder("liked")
	fresh := strongFounder("fresh")
	fx.profiles.add(viewer, liked, fresh)
	fx.likes.add(viewer.ID, liked.ID)

	standouts, err := fx.standouts.Standouts(ctx, viewer.ID, 10)
	if err != nil {
		t.Fatalf("Standouts: %v", err)
	}
	if len(standouts) != 1 || standouts[0].Profile.ID != fresh.ID {
		t.Fatalf("expected only the fresh founder, got %d standouts", len(standouts))
	}
}

func TestStandoutsAlwaysTargetsOppositeRole(t *testing.T) {
	fx := newStandoutsFixture(t)
	ctx := context.Background()

	viewer := strongInvestorViewer()
	// A same-role twin would score 50 at most, but must not even be
	// considered.
	twin := strongInvestorViewer()
	fx.profiles.add(viewer, twin)

	standouts, err := fx.standouts.Standouts(ctx, viewer.ID, 10)
	if err != nil {
		t.Fatalf("Standouts: %v", err)
	}
	if len(standouts) != 0 {
		t.Fatalf("same-role profile surfaced as standout: %v", standouts[0].Profile.DisplayName)
	}
}
