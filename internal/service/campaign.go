package service

import (
	"context"
	"errors"
	"fmt"

	"fundchamps/internal/dto"
	"fundchamps/internal/model"
	"fundchamps/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidGoal = errors.New("invalid campaign goal")

type CampaignService interface {
	// CreateGoal opens a new season goal and retires any previously active
	// one, so at most one ledger row is ever live.
	CreateGoal(ctx context.Context, req *dto.CampaignGoalRequest) (*dto.CampaignGoalResponse, error)
}

type campaignServiceImpl struct {
	db           *gorm.DB
	campaignRepo repository.CampaignRepository
}

func NewCampaignService(db *gorm.DB, campaignRepo repository.CampaignRepository) CampaignService {
	return &campaignServiceImpl{
		db:           db,
		campaignRepo: campaignRepo,
	}
}

func (s *campaignServiceImpl) CreateGoal(ctx context.Context, req *dto.CampaignGoalRequest) (*dto.CampaignGoalResponse, error) {
	if req.Goal <= 0 {
		return nil, ErrInvalidGoal
	}

	goal := &model.CampaignGoal{
		UUID:            uuid.NewString(),
		GoalAmountCents: int64(req.Goal),
		Active:          true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.campaignRepo.DeactivateAll(ctx, tx); err != nil {
			return fmt.Errorf("deactivate campaigns: %w", err)
		}
		return s.campaignRepo.Create(ctx, tx, goal)
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign goal: %w", err)
	}

	return &dto.CampaignGoalResponse{
		UUID:      goal.UUID,
		Goal:      goal.GoalAmountCents,
		Total:     goal.TotalCents,
		Active:    goal.Active,
		CreatedAt: goal.CreatedAt,
	}, nil
}
