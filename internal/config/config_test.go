package config

import (
	"testing"

	"github.com/caarlos0/env/v10"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Fatalf("default port: got %q, want 8080", cfg.HTTP.Port)
	}
	if cfg.Stripe.Currency != "usd" {
		t.Fatalf("default currency: got %q, want usd", cfg.Stripe.Currency)
	}
	if cfg.Campaign.FallbackGoalCents != 1000000 {
		t.Fatalf("default fallback goal: got %d, want 1000000", cfg.Campaign.FallbackGoalCents)
	}
	if cfg.Campaign.LeaderboardSize != 10 {
		t.Fatalf("default leaderboard size: got %d, want 10", cfg.Campaign.LeaderboardSize)
	}
	if cfg.Environment.Name != "development" {
		t.Fatalf("default environment: got %q, want development", cfg.Environment.Name)
	}
}

func TestParseReadsPrefixedStripeVars(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_123")
	t.Setenv("CAMPAIGN_FALLBACK_GOAL_CENTS", "500000")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if cfg.Stripe.SecretKey != "sk_test_123" {
		t.Fatalf("stripe secret key: got %q", cfg.Stripe.SecretKey)
	}
	if cfg.Stripe.WebhookSecret != "whsec_test_123" {
		t.Fatalf("stripe webhook secret: got %q", cfg.Stripe.WebhookSecret)
	}
	if cfg.Campaign.FallbackGoalCents != 500000 {
		t.Fatalf("fallback goal override: got %d, want 500000", cfg.Campaign.FallbackGoalCents)
	}
}
