package repository

import (
	"context"

	"fundchamps/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	ExistsByEventID(ctx context.Context, tx *gorm.DB, eventID string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, txn *model.Transaction) error
	ListRecent(ctx context.Context, limit int) ([]model.Transaction, error)
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{db: db}
}

func (r *transactionRepoImpl) ExistsByEventID(ctx context.Context, tx *gorm.DB, eventID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Transaction{}).
		Where("event_id = ?", eventID).
		Count(&count).Error

	return count > 0, err
}

func (r *transactionRepoImpl) Create(ctx context.Context, tx *gorm.DB, txn *model.Transaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepoImpl) ListRecent(ctx context.Context, limit int) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
