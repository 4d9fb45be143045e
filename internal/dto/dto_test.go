package dto

import (
	"encoding/json"
	"testing"
)

func TestAmountCentsDecodesDollarsToCents(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want AmountCents
	}{
		{"integer string", `{"amount":"100"}`, 10000},
		{"decimal string", `{"amount":"100.50"}`, 10050},
		{"number", `{"amount":25.5}`, 2550},
		{"integer number", `{"amount":100}`, 10000},
		{"one cent", `{"amount":"0.01"}`, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req DonateRequest
			if err := json.Unmarshal([]byte(tc.in), &req); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if req.Amount != tc.want {
				t.Fatalf("amount: got %d, want %d", req.Amount, tc.want)
			}
		})
	}
}

func TestAmountCentsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not a number", `{"amount":"abc"}`},
		{"sub-cent precision", `{"amount":"100.005"}`},
		{"empty string", `{"amount":""}`},
		{"null", `{"amount":null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req DonateRequest
			if err := json.Unmarshal([]byte(tc.in), &req); err == nil {
				t.Fatalf("expected decode error for %s", tc.in)
			}
		})
	}
}
