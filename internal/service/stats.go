package service

import (
	"context"
	"fmt"

	"fundchamps/internal/config"
	"fundchamps/internal/dto"
	"fundchamps/internal/repository"
)

type StatsService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	RecentTransactions(ctx context.Context, limit int) ([]dto.TransactionResponse, error)
}

type statsServiceImpl struct {
	sponsorRepo  repository.SponsorRepository
	campaignRepo repository.CampaignRepository
	txnRepo      repository.TransactionRepository
	campaignCfg  *config.Campaign
}

func NewStatsService(
	sponsorRepo repository.SponsorRepository,
	campaignRepo repository.CampaignRepository,
	txnRepo repository.TransactionRepository,
	campaignCfg *config.Campaign,
) StatsService {
	return &statsServiceImpl{
		sponsorRepo:  sponsorRepo,
		campaignRepo: campaignRepo,
		txnRepo:      txnRepo,
		campaignCfg:  campaignCfg,
	}
}

// Stats reads committed state on every call; at this scale a cache would only
// add invalidation problems.
func (s *statsServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	raised, err := s.sponsorRepo.SumApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum approved sponsors: %w", err)
	}

	goalCents := s.campaignCfg.FallbackGoalCents
	goal, err := s.campaignRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active campaign: %w", err)
	}
	if goal != nil {
		goalCents = goal.GoalAmountCents
	}

	percent := 0.0
	if goalCents > 0 {
		percent = float64(raised) / float64(goalCents) * 100
	}

	top, err := s.sponsorRepo.Leaderboard(ctx, s.campaignCfg.LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	leaderboard := make([]dto.LeaderboardEntry, 0, len(top))
	for _, sponsor := range top {
		leaderboard = append(leaderboard, dto.LeaderboardEntry{
			Name:   sponsor.Name,
			Amount: sponsor.AmountCents,
		})
	}

	return &dto.StatsResponse{
		Raised:      raised,
		Goal:        goalCents,
		Percent:     percent,
		Leaderboard: leaderboard,
	}, nil
}

func (s *statsServiceImpl) RecentTransactions(ctx context.Context, limit int) ([]dto.TransactionResponse, error) {
	txns, err := s.txnRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, dto.TransactionResponse{
			EventID:   txn.EventID,
			Amount:    txn.AmountCents,
			Source:    txn.Source,
			Status:    txn.Status,
			CreatedAt: txn.CreatedAt,
		})
	}
	return out, nil
}
