package client

import (
	"context"
	"fmt"
	"net/http"

	"fundchamps/internal/config"
	"fundchamps/internal/model"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

type CheckoutSession struct {
	SessionID string
	URL       string
}

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, name, email string, amountCents int64) (*CheckoutSession, error)
	// VerifyWebhookSignature must be handed the raw, unparsed request body:
	// the signature covers the exact bytes Stripe sent.
	VerifyWebhookSignature(headers http.Header, body []byte) error
}

type stripeClientImpl struct {
	currency      string
	baseURL       string
	webhookSecret string
}

func NewStripeClient(stripeCfg *config.Stripe, baseURL string) StripeClient {
	stripe.Key = stripeCfg.SecretKey

	return &stripeClientImpl{
		currency:      stripeCfg.Currency,
		baseURL:       baseURL,
		webhookSecret: stripeCfg.WebhookSecret,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, name, email string, amountCents int64) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Sponsorship - " + name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.baseURL + "/?success=true&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(c.baseURL + "/?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata(model.MetadataSponsorName, name)
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (c *stripeClientImpl) VerifyWebhookSignature(headers http.Header, body []byte) error {
	_, err := webhook.ConstructEventWithOptions(
		body,
		headers.Get("Stripe-Signature"),
		c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return fmt.Errorf("construct event: %w", err)
	}
	return nil
}
