package model

import "time"

// All monetary amounts are integer cents. Dollar values are converted at the
// JSON boundary and never stored or computed as floats.

const (
	SponsorStatusPending  = "pending"
	SponsorStatusApproved = "approved"
	SponsorStatusRejected = "rejected"
)

const (
	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
	TransactionStatusRefunded  = "refunded"
	TransactionStatusFailed    = "failed"
)

const TransactionSourceStripe = "stripe"

type Sponsor struct {
	ID          uint   `gorm:"primaryKey"`
	UUID        string `gorm:"size:36;uniqueIndex;not null"`
	Name        string `gorm:"size:100;not null"`
	Email       string `gorm:"size:255;index"`
	AmountCents int64  `gorm:"not null;default:0"`
	// pending, approved, rejected. Only pending rows transition.
	Status  string `gorm:"size:32;index;not null;default:pending"`
	Message string `gorm:"size:500"`
	Deleted bool   `gorm:"not null;default:false"`

	// References into the payment processor, set when a checkout session is
	// created or when a webhook event resolves to this sponsor.
	StripeSessionID string `gorm:"size:128;index"`
	PaymentIntentID string `gorm:"size:128;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CampaignGoal is the ledger: one row per season, at most one active.
type CampaignGoal struct {
	ID              uint   `gorm:"primaryKey"`
	UUID            string `gorm:"size:36;uniqueIndex;not null"`
	GoalAmountCents int64  `gorm:"not null;default:0"`
	TotalCents      int64  `gorm:"not null;default:0"`
	Active          bool   `gorm:"index;not null;default:false"`
	Deleted         bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Transaction is the append-only payment audit log. EventID carries the
// processor's checkout-session or payment-intent id; the unique index is what
// turns a replayed webhook delivery into a no-op.
type Transaction struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     string `gorm:"size:128;uniqueIndex;not null"`
	SponsorID   *uint  `gorm:"index"`
	AmountCents int64  `gorm:"not null"`
	Source      string `gorm:"size:32;not null"`
	Status      string `gorm:"size:32;index;not null"`
	Notes       string `gorm:"size:255"`
	CreatedAt   time.Time
}
