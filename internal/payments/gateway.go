// Package payments wraps the payment provider behind two operations so a
// real gateway can replace the stub without touching booking creation.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
)

type Intent struct {
	ID           string       `json:"id"`
	ClientSecret string       `json:"client_secret"`
	Amount       domain.Cents `json:"amount"`
	Currency     string       `json:"currency"`
	Status       string       `json:"status"`
}

type Confirmation struct {
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

type Gateway interface {
	CreateIntent(ctx context.Context, amount domain.Cents, bookingID string) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) (*Confirmation, error)
}

// NewGateway returns the Stripe gateway when a secret key is configured,
// else the deterministic stub.
func NewGateway(secretKey string) Gateway {
	if secretKey == "" {
		return &StubGateway{}
	}
	return NewStripeGateway(secretKey)
}

type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount domain.Cents, bookingID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount)),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
	}
	params.Context = ctx
	if bookingID != "" {
		params.AddMetadata("booking_id", bookingID)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       domain.Cents(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) ConfirmIntent(ctx context.Context, intentID string) (*Confirmation, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get intent: %w", err)
	}
	return &Confirmation{IntentID: pi.ID, Status: string(pi.Status)}, nil
}

// StubGateway answers with deterministic placeholders so the booking flow
// is testable without Stripe credentials.
type StubGateway struct{}

func (g *StubGateway) CreateIntent(_ context.Context, amount domain.Cents, bookingID string) (*Intent, error) {
	ref := bookingID
	if ref == "" {
		ref = "anonymous"
	}
	id := fmt.Sprintf("pi_stub_%s_%d", ref, int64(amount))
	return &Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       amount,
		Currency:     "eur",
		Status:       "requires_payment_method",
	}, nil
}

func (g *StubGateway) ConfirmIntent(_ context.Context, intentID string) (*Confirmation, error) {
	return &Confirmation{IntentID: intentID, Status: "succeeded"}, nil
}

var (
	_ Gateway = (*StripeGateway)(nil)
	_ Gateway = (*StubGateway)(nil)
)
