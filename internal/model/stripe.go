package model

import "encoding/json"

// Stripe event types this service reacts to. Anything else is acknowledged
// without side effects so the processor stops retrying.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentSucceeded  = "payment_intent.succeeded"
)

// MetadataSponsorName is set on checkout sessions so the webhook can recover
// the display name the donor entered on the pledge form.
const MetadataSponsorName = "sponsor_name"

type StripeWebhookEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    StripeEventData `json:"data"`
}

type StripeEventData struct {
	Object json.RawMessage `json:"object"`
}

type CheckoutSessionObject struct {
	ID            string            `json:"id"`
	CustomerEmail string            `json:"customer_email"`
	AmountTotal   int64             `json:"amount_total"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type PaymentIntentObject struct {
	ID             string `json:"id"`
	AmountReceived int64  `json:"amount_received"`
	Customer       string `json:"customer"`
}
