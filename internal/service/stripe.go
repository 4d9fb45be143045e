package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fundchamps/internal/client"
	"fundchamps/internal/dto"
	"fundchamps/internal/live"
	"fundchamps/internal/model"
	"fundchamps/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	// ErrSignatureVerification and ErrMalformedPayload map to 400 in the
	// handler; anything else surfaced by HandleWebhook maps to 500 so the
	// processor retries.
	ErrSignatureVerification = errors.New("webhook signature verification failed")
	ErrMalformedPayload      = errors.New("malformed webhook payload")

	ErrInvalidDonation = errors.New("invalid donation request")

	errNoSponsor = errors.New("no sponsor resolvable for event")
)

const anonymousSponsorName = "Anonymous"

type StripeService interface {
	CreateDonationSession(ctx context.Context, req *dto.DonateRequest) (*dto.DonateResponse, error)
	HandleWebhook(ctx context.Context, headers http.Header, body []byte) error
}

type stripeServiceImpl struct {
	stripeClient client.StripeClient
	db           *gorm.DB
	sponsorRepo  repository.SponsorRepository
	campaignRepo repository.CampaignRepository
	txnRepo      repository.TransactionRepository
	hub          live.Broadcaster
	logger       zerolog.Logger
}

func NewStripeService(
	stripeClient client.StripeClient,
	db *gorm.DB,
	sponsorRepo repository.SponsorRepository,
	campaignRepo repository.CampaignRepository,
	txnRepo repository.TransactionRepository,
	hub live.Broadcaster,
	logger zerolog.Logger,
) StripeService {
	return &stripeServiceImpl{
		stripeClient: stripeClient,
		db:           db,
		sponsorRepo:  sponsorRepo,
		campaignRepo: campaignRepo,
		txnRepo:      txnRepo,
		hub:          hub,
		logger:       logger.With().Str("component", "stripe").Logger(),
	}
}

func (s *stripeServiceImpl) CreateDonationSession(ctx context.Context, req *dto.DonateRequest) (*dto.DonateResponse, error) {
	if req.Name == "" || req.Amount <= 0 {
		return nil, ErrInvalidDonation
	}

	sess, err := s.stripeClient.CreateCheckoutSession(ctx, req.Name, req.Email, int64(req.Amount))
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// A pending sponsor row carries the session id so the webhook can match
	// the confirmation back to this pledge.
	sponsor := &model.Sponsor{
		UUID:            uuid.NewString(),
		Name:            req.Name,
		Email:           req.Email,
		AmountCents:     int64(req.Amount),
		Status:          model.SponsorStatusPending,
		StripeSessionID: sess.SessionID,
	}
	if err := s.sponsorRepo.Create(ctx, s.db, sponsor); err != nil {
		return nil, fmt.Errorf("create pending sponsor: %w", err)
	}

	return &dto.DonateResponse{URL: sess.URL}, nil
}

func (s *stripeServiceImpl) HandleWebhook(ctx context.Context, headers http.Header, body []byte) error {
	if err := s.stripeClient.VerifyWebhookSignature(headers, body); err != nil {
		s.logger.Warn().Err(err).Msg("webhook signature rejected")
		return ErrSignatureVerification
	}

	var event model.StripeWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.Warn().Err(err).Msg("webhook payload not decodable")
		return ErrMalformedPayload
	}

	switch event.Type {
	case model.EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ctx, &event)
	case model.EventPaymentSucceeded:
		return s.handlePaymentSucceeded(ctx, &event)
	default:
		// Acknowledge so the processor stops retrying events we ignore.
		s.logger.Info().Str("event_id", event.ID).Str("type", event.Type).Msg("ignoring unhandled webhook event")
		return nil
	}
}

// ledgerOutcome is what a successfully applied event contributes to the live
// feed. nil means the event was a duplicate or no-op.
type ledgerOutcome struct {
	name        string
	amountCents int64
	goalTotal   *int64
}

func (s *stripeServiceImpl) handleCheckoutCompleted(ctx context.Context, event *model.StripeWebhookEvent) error {
	var sess model.CheckoutSessionObject
	if err := json.Unmarshal(event.Data.Object, &sess); err != nil || sess.ID == "" || sess.AmountTotal < 0 {
		s.logger.Warn().Str("event_id", event.ID).Msg("malformed checkout.session.completed payload")
		return ErrMalformedPayload
	}

	name := sess.Metadata[model.MetadataSponsorName]
	if name == "" {
		name = anonymousSponsorName
	}

	var outcome *ledgerOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The uniqueness check and the ledger increment live in the same
		// database transaction; the unique index on transactions.event_id
		// backstops concurrent deliveries of the same session.
		seen, err := s.txnRepo.ExistsByEventID(ctx, tx, sess.ID)
		if err != nil {
			return fmt.Errorf("check event applied: %w", err)
		}
		if seen {
			s.logger.Info().Str("session_id", sess.ID).Msg("duplicate webhook delivery, skipping")
			return nil
		}

		sponsor, err := s.sponsorRepo.FindBySessionID(ctx, tx, sess.ID)
		if err != nil {
			return fmt.Errorf("find sponsor by session: %w", err)
		}
		if sponsor == nil && sess.CustomerEmail != "" {
			sponsor, err = s.sponsorRepo.FindByEmail(ctx, tx, sess.CustomerEmail)
			if err != nil {
				return fmt.Errorf("find sponsor by email: %w", err)
			}
		}

		switch {
		case sponsor == nil:
			// Payment already cleared, so the sponsor lands approved.
			sponsor = &model.Sponsor{
				UUID:            uuid.NewString(),
				Name:            name,
				Email:           sess.CustomerEmail,
				AmountCents:     sess.AmountTotal,
				Status:          model.SponsorStatusApproved,
				StripeSessionID: sess.ID,
				PaymentIntentID: sess.PaymentIntent,
			}
			if err := s.sponsorRepo.Create(ctx, tx, sponsor); err != nil {
				return fmt.Errorf("create sponsor: %w", err)
			}
		case sponsor.Status == model.SponsorStatusApproved && sponsor.AmountCents == sess.AmountTotal:
			s.logger.Info().Str("session_id", sess.ID).Str("sponsor", sponsor.UUID).
				Msg("sponsor already approved for this amount, treating as replay")
			return nil
		case sponsor.Status == model.SponsorStatusPending:
			// The processor-confirmed amount wins over what the form said.
			sponsor.Status = model.SponsorStatusApproved
			sponsor.AmountCents = sess.AmountTotal
			sponsor.StripeSessionID = sess.ID
			if sess.PaymentIntent != "" {
				sponsor.PaymentIntentID = sess.PaymentIntent
			}
			if err := s.sponsorRepo.Save(ctx, tx, sponsor); err != nil {
				return fmt.Errorf("approve sponsor: %w", err)
			}
		default:
			// Approved with a different amount, or rejected: a fresh payment
			// from a known email, not a replay.
			sponsor = &model.Sponsor{
				UUID:            uuid.NewString(),
				Name:            name,
				Email:           sess.CustomerEmail,
				AmountCents:     sess.AmountTotal,
				Status:          model.SponsorStatusApproved,
				StripeSessionID: sess.ID,
				PaymentIntentID: sess.PaymentIntent,
			}
			if err := s.sponsorRepo.Create(ctx, tx, sponsor); err != nil {
				return fmt.Errorf("create sponsor: %w", err)
			}
		}

		goal, err := s.campaignRepo.IncrementActiveTotal(ctx, tx, sess.AmountTotal)
		if err != nil {
			return fmt.Errorf("update campaign total: %w", err)
		}

		txn := &model.Transaction{
			EventID:     sess.ID,
			SponsorID:   &sponsor.ID,
			AmountCents: sess.AmountTotal,
			Source:      model.TransactionSourceStripe,
			Status:      model.TransactionStatusCompleted,
			Notes:       event.Type,
		}
		if err := s.txnRepo.Create(ctx, tx, txn); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		outcome = &ledgerOutcome{name: sponsor.Name, amountCents: sess.AmountTotal}
		if goal != nil {
			outcome.goalTotal = &goal.TotalCents
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("event_id", event.ID).Str("type", event.Type).Msg("webhook apply failed")
		return fmt.Errorf("apply %s: %w", event.Type, err)
	}

	s.notify(outcome)
	return nil
}

func (s *stripeServiceImpl) handlePaymentSucceeded(ctx context.Context, event *model.StripeWebhookEvent) error {
	var pi model.PaymentIntentObject
	if err := json.Unmarshal(event.Data.Object, &pi); err != nil || pi.ID == "" || pi.AmountReceived < 0 {
		s.logger.Warn().Str("event_id", event.ID).Msg("malformed payment_intent.succeeded payload")
		return ErrMalformedPayload
	}

	var outcome *ledgerOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen, err := s.txnRepo.ExistsByEventID(ctx, tx, pi.ID)
		if err != nil {
			return fmt.Errorf("check event applied: %w", err)
		}
		if seen {
			s.logger.Info().Str("payment_intent", pi.ID).Msg("duplicate webhook delivery, skipping")
			return nil
		}

		sponsor, err := s.sponsorRepo.FindByPaymentIntentID(ctx, tx, pi.ID)
		if err != nil {
			return fmt.Errorf("find sponsor by payment intent: %w", err)
		}
		if sponsor == nil {
			return errNoSponsor
		}
		if sponsor.Status == model.SponsorStatusApproved {
			// Checkout completion already reconciled this payment under the
			// session id; counting the intent event too would double-book.
			s.logger.Info().Str("payment_intent", pi.ID).Str("sponsor", sponsor.UUID).
				Msg("payment intent already reconciled, skipping")
			return nil
		}

		sponsor.Status = model.SponsorStatusApproved
		sponsor.AmountCents = pi.AmountReceived
		if err := s.sponsorRepo.Save(ctx, tx, sponsor); err != nil {
			return fmt.Errorf("approve sponsor: %w", err)
		}

		goal, err := s.campaignRepo.IncrementActiveTotal(ctx, tx, pi.AmountReceived)
		if err != nil {
			return fmt.Errorf("update campaign total: %w", err)
		}

		txn := &model.Transaction{
			EventID:     pi.ID,
			SponsorID:   &sponsor.ID,
			AmountCents: pi.AmountReceived,
			Source:      model.TransactionSourceStripe,
			Status:      model.TransactionStatusCompleted,
			Notes:       event.Type,
		}
		if err := s.txnRepo.Create(ctx, tx, txn); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		outcome = &ledgerOutcome{name: sponsor.Name, amountCents: pi.AmountReceived}
		if goal != nil {
			outcome.goalTotal = &goal.TotalCents
		}
		return nil
	})
	if errors.Is(err, errNoSponsor) {
		// Nothing to act on; acknowledge so the processor stops retrying,
		// but leave a trace for a human.
		s.logger.Warn().Str("event_id", event.ID).Str("payment_intent", pi.ID).
			Msg("no sponsor linked to payment intent, acknowledging without changes")
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("event_id", event.ID).Str("type", event.Type).Msg("webhook apply failed")
		return fmt.Errorf("apply %s: %w", event.Type, err)
	}

	s.notify(outcome)
	return nil
}

func (s *stripeServiceImpl) notify(outcome *ledgerOutcome) {
	if outcome == nil || s.hub == nil {
		return
	}
	s.hub.Broadcast(live.EventNewSponsor, live.NewSponsorPayload{
		Name:      outcome.name,
		Amount:    outcome.amountCents,
		GoalTotal: outcome.goalTotal,
	})
}
