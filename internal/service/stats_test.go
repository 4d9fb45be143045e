package service

import (
	"context"
	"testing"
	"time"

	"fundchamps/internal/config"
	"fundchamps/internal/model"
	"fundchamps/internal/repository"

	"gorm.io/gorm"
)

func newTestStatsService(t *testing.T, db *gorm.DB, cfg *config.Campaign) StatsService {
	t.Helper()
	if cfg == nil {
		cfg = &config.Campaign{FallbackGoalCents: 1000000, LeaderboardSize: 10}
	}
	return NewStatsService(
		repository.NewSponsorRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewTransactionRepository(db),
		cfg,
	)
}

func seedSponsor(t *testing.T, db *gorm.DB, uuid, name, status string, amountCents int64, createdAt time.Time, deleted bool) {
	t.Helper()
	sponsor := &model.Sponsor{
		UUID:        uuid,
		Name:        name,
		AmountCents: amountCents,
		Status:      status,
		Deleted:     deleted,
		CreatedAt:   createdAt,
	}
	if err := db.Create(sponsor).Error; err != nil {
		t.Fatalf("seed sponsor %s: %v", uuid, err)
	}
}

func TestStatsZeroGoalYieldsZeroPercent(t *testing.T) {
	db := newTestDB(t)
	seedActiveGoal(t, db, 0)
	svc := newTestStatsService(t, db, nil)

	seedSponsor(t, db, "s1", "A", model.SponsorStatusApproved, 5000, time.Now(), false)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Percent != 0 {
		t.Fatalf("percent with zero goal: got %v, want 0", stats.Percent)
	}
	if stats.Raised != 5000 {
		t.Fatalf("raised: got %d, want 5000", stats.Raised)
	}
}

func TestStatsFallbackGoalWhenNoActiveCampaign(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db, &config.Campaign{FallbackGoalCents: 1000000, LeaderboardSize: 10})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Goal != 1000000 {
		t.Fatalf("goal: got %d, want fallback 1000000", stats.Goal)
	}
	if stats.Raised != 0 {
		t.Fatalf("raised: got %d, want 0", stats.Raised)
	}
}

func TestStatsRaisedExcludesPendingAndDeleted(t *testing.T) {
	db := newTestDB(t)
	seedActiveGoal(t, db, 100000)
	svc := newTestStatsService(t, db, nil)

	now := time.Now()
	seedSponsor(t, db, "s1", "Approved", model.SponsorStatusApproved, 10000, now, false)
	seedSponsor(t, db, "s2", "Pending", model.SponsorStatusPending, 20000, now, false)
	seedSponsor(t, db, "s3", "Rejected", model.SponsorStatusRejected, 30000, now, false)
	seedSponsor(t, db, "s4", "Removed", model.SponsorStatusApproved, 40000, now, true)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Raised != 10000 {
		t.Fatalf("raised: got %d, want 10000", stats.Raised)
	}
	if len(stats.Leaderboard) != 1 || stats.Leaderboard[0].Name != "Approved" {
		t.Fatalf("leaderboard should hold only approved sponsors: %+v", stats.Leaderboard)
	}
}

func TestStatsLeaderboardOrdersByAmountThenInsertion(t *testing.T) {
	db := newTestDB(t)
	seedActiveGoal(t, db, 100000)
	svc := newTestStatsService(t, db, nil)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedSponsor(t, db, "s1", "Fifty", model.SponsorStatusApproved, 5000, base, false)
	seedSponsor(t, db, "s2", "TwoHundredFirst", model.SponsorStatusApproved, 20000, base.Add(1*time.Minute), false)
	seedSponsor(t, db, "s3", "TwoHundredSecond", model.SponsorStatusApproved, 20000, base.Add(2*time.Minute), false)
	seedSponsor(t, db, "s4", "Ten", model.SponsorStatusApproved, 1000, base.Add(3*time.Minute), false)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}

	want := []string{"TwoHundredFirst", "TwoHundredSecond", "Fifty", "Ten"}
	if len(stats.Leaderboard) != len(want) {
		t.Fatalf("leaderboard length: got %d, want %d", len(stats.Leaderboard), len(want))
	}
	for i, name := range want {
		if stats.Leaderboard[i].Name != name {
			t.Fatalf("leaderboard[%d]: got %q, want %q (full: %+v)", i, stats.Leaderboard[i].Name, name, stats.Leaderboard)
		}
	}
}

func TestStatsLeaderboardHonorsSizeLimit(t *testing.T) {
	db := newTestDB(t)
	seedActiveGoal(t, db, 100000)
	svc := newTestStatsService(t, db, &config.Campaign{FallbackGoalCents: 1000000, LeaderboardSize: 2})

	now := time.Now()
	seedSponsor(t, db, "s1", "A", model.SponsorStatusApproved, 1000, now, false)
	seedSponsor(t, db, "s2", "B", model.SponsorStatusApproved, 2000, now, false)
	seedSponsor(t, db, "s3", "C", model.SponsorStatusApproved, 3000, now, false)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if len(stats.Leaderboard) != 2 {
		t.Fatalf("leaderboard length: got %d, want 2", len(stats.Leaderboard))
	}
	if stats.Leaderboard[0].Name != "C" || stats.Leaderboard[1].Name != "B" {
		t.Fatalf("leaderboard order: %+v", stats.Leaderboard)
	}
}
