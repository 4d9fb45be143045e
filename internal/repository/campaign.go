package repository

import (
	"context"
	"errors"
	"time"

	"fundchamps/internal/model"

	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(ctx context.Context, tx *gorm.DB, goal *model.CampaignGoal) error
	// DeactivateAll retires every live campaign row; run it in the same
	// transaction as Create to keep at most one row active.
	DeactivateAll(ctx context.Context, tx *gorm.DB) error
	// FindActive returns (nil, nil) when no campaign is live.
	FindActive(ctx context.Context) (*model.CampaignGoal, error)
	// IncrementActiveTotal adds amountCents to the active ledger row inside
	// the caller's transaction and returns the updated row, or (nil, nil)
	// when no campaign is active.
	IncrementActiveTotal(ctx context.Context, tx *gorm.DB, amountCents int64) (*model.CampaignGoal, error)
}

type campaignRepoImpl struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepoImpl{db: db}
}

func (r *campaignRepoImpl) Create(ctx context.Context, tx *gorm.DB, goal *model.CampaignGoal) error {
	return tx.WithContext(ctx).Create(goal).Error
}

func (r *campaignRepoImpl) DeactivateAll(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Model(&model.CampaignGoal{}).
		Where("active = ?", true).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now(),
		}).Error
}

func (r *campaignRepoImpl) FindActive(ctx context.Context) (*model.CampaignGoal, error) {
	return activeGoal(r.db.WithContext(ctx))
}

func (r *campaignRepoImpl) IncrementActiveTotal(ctx context.Context, tx *gorm.DB, amountCents int64) (*model.CampaignGoal, error) {
	res := tx.WithContext(ctx).Model(&model.CampaignGoal{}).
		Where("active = ? AND deleted = ?", true, false).
		Updates(map[string]interface{}{
			"total_cents": gorm.Expr("total_cents + ?", amountCents),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return activeGoal(tx.WithContext(ctx))
}

func activeGoal(q *gorm.DB) (*model.CampaignGoal, error) {
	var goal model.CampaignGoal
	err := q.Where("active = ? AND deleted = ?", true, false).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
