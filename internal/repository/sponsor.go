package repository

import (
	"context"
	"errors"
	"time"

	"fundchamps/internal/model"

	"gorm.io/gorm"
)

type SponsorRepository interface {
	// Methods taking an explicit tx run inside the webhook reconciler's
	// database transaction.
	Create(ctx context.Context, tx *gorm.DB, sponsor *model.Sponsor) error
	Save(ctx context.Context, tx *gorm.DB, sponsor *model.Sponsor) error
	FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*model.Sponsor, error)
	FindByPaymentIntentID(ctx context.Context, tx *gorm.DB, intentID string) (*model.Sponsor, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.Sponsor, error)

	FindByUUID(ctx context.Context, uuid string) (*model.Sponsor, error)
	List(ctx context.Context, status string) ([]model.Sponsor, error)
	UpdateStatus(ctx context.Context, uuid, from, to string) (bool, error)
	SoftDelete(ctx context.Context, uuid string) (bool, error)
	SumApproved(ctx context.Context) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]model.Sponsor, error)
}

type sponsorRepoImpl struct {
	db *gorm.DB
}

func NewSponsorRepository(db *gorm.DB) SponsorRepository {
	return &sponsorRepoImpl{db: db}
}

func (r *sponsorRepoImpl) Create(ctx context.Context, tx *gorm.DB, sponsor *model.Sponsor) error {
	return tx.WithContext(ctx).Create(sponsor).Error
}

func (r *sponsorRepoImpl) Save(ctx context.Context, tx *gorm.DB, sponsor *model.Sponsor) error {
	return tx.WithContext(ctx).Save(sponsor).Error
}

func (r *sponsorRepoImpl) FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*model.Sponsor, error) {
	return firstSponsor(tx.WithContext(ctx).
		Where("stripe_session_id = ? AND deleted = ?", sessionID, false))
}

func (r *sponsorRepoImpl) FindByPaymentIntentID(ctx context.Context, tx *gorm.DB, intentID string) (*model.Sponsor, error) {
	return firstSponsor(tx.WithContext(ctx).
		Where("payment_intent_id = ? AND deleted = ?", intentID, false))
}

func (r *sponsorRepoImpl) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.Sponsor, error) {
	return firstSponsor(tx.WithContext(ctx).
		Where("email = ? AND deleted = ?", email, false).
		Order("created_at DESC"))
}

func (r *sponsorRepoImpl) FindByUUID(ctx context.Context, uuid string) (*model.Sponsor, error) {
	var sponsor model.Sponsor
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND deleted = ?", uuid, false).
		First(&sponsor).Error
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (r *sponsorRepoImpl) List(ctx context.Context, status string) ([]model.Sponsor, error) {
	q := r.db.WithContext(ctx).Where("deleted = ?", false)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var sponsors []model.Sponsor
	if err := q.Order("created_at DESC").Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

// UpdateStatus transitions a sponsor from one status to another. The guard on
// the current status makes illegal transitions (approved -> rejected, ...)
// report false instead of silently overwriting.
func (r *sponsorRepoImpl) UpdateStatus(ctx context.Context, uuid, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Sponsor{}).
		Where("uuid = ? AND status = ? AND deleted = ?", uuid, from, false).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *sponsorRepoImpl) SoftDelete(ctx context.Context, uuid string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Sponsor{}).
		Where("uuid = ? AND deleted = ?", uuid, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *sponsorRepoImpl) SumApproved(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Sponsor{}).
		Where("status = ? AND deleted = ?", model.SponsorStatusApproved, false).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (r *sponsorRepoImpl) Leaderboard(ctx context.Context, limit int) ([]model.Sponsor, error) {
	var sponsors []model.Sponsor
	err := r.db.WithContext(ctx).
		Where("status = ? AND deleted = ?", model.SponsorStatusApproved, false).
		Order("amount_cents DESC, created_at ASC").
		Limit(limit).
		Find(&sponsors).Error
	if err != nil {
		return nil, err
	}
	return sponsors, nil
}

// firstSponsor maps gorm's not-found error to (nil, nil) so the reconciler
// can branch on presence without errors.Is at every call site.
func firstSponsor(q *gorm.DB) (*model.Sponsor, error) {
	var sponsor model.Sponsor
	err := q.First(&sponsor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}
