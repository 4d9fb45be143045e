package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AmountCents accepts a dollar amount as a JSON number or string ("100",
// "100.00", 25.5) and converts it to integer cents on decode. Conversion
// happens once, here; nothing downstream touches floating-point currency.
type AmountCents int64

func (a *AmountCents) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return fmt.Errorf("amount has sub-cent precision")
	}
	*a = AmountCents(cents.IntPart())
	return nil
}

type DonateRequest struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Amount AmountCents `json:"amount"`
}

type DonateResponse struct {
	URL string `json:"url"`
}

type SponsorRequest struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Amount  AmountCents `json:"amount"`
	Message string      `json:"message"`
}

type SponsorResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type StatsResponse struct {
	Raised      int64              `json:"raised"`
	Goal        int64              `json:"goal"`
	Percent     float64            `json:"percent"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type CampaignGoalRequest struct {
	Goal AmountCents `json:"goal"`
}

type CampaignGoalResponse struct {
	UUID      string    `json:"uuid"`
	Goal      int64     `json:"goal"`
	Total     int64     `json:"total"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type TransactionResponse struct {
	EventID   string    `json:"event_id"`
	Amount    int64     `json:"amount"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
