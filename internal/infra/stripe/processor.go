// Package stripe adapts Stripe Checkout to the donation flow.
package stripe

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"emb-site/internal/domain/donations"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

type Config struct {
	SecretKey string
	Currency  string
	// AppURL is the public site the donor returns to.
	AppURL string
	// APIURL is where cancel links point.
	APIURL string
}

// Processor opens checkout sessions and fetches them back.
type Processor struct {
	cfg Config

	newSession func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	getSession func(string, *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func New(cfg Config) *Processor {
	stripe.Key = cfg.SecretKey
	if cfg.Currency == "" {
		cfg.Currency = "ars"
	}
	return &Processor{
		cfg:        cfg,
		newSession: checkoutsession.New,
		getSession: checkoutsession.Get,
	}
}

func (p *Processor) CreatePreference(ctx context.Context, req donations.CheckoutRequest) (donations.Checkout, error) {
	params := p.baseParams(ctx, req, stripe.CheckoutSessionModePayment)
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
		Quantity: stripe.Int64(1),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(p.cfg.Currency),
			UnitAmount: stripe.Int64(req.Amount * 100),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String("Donación"),
			},
		},
	}}
	params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
		Metadata: map[string]string{"donation_id": req.DonationID},
	}
	return p.open(params)
}

func (p *Processor) CreateSubscription(ctx context.Context, req donations.CheckoutRequest) (donations.Checkout, error) {
	params := p.baseParams(ctx, req, stripe.CheckoutSessionModeSubscription)
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
		Quantity: stripe.Int64(1),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(p.cfg.Currency),
			UnitAmount: stripe.Int64(req.Amount * 100),
			Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
			},
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String("Donación mensual"),
			},
		},
	}}
	params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
		Metadata: map[string]string{"donation_id": req.DonationID},
	}
	return p.open(params)
}

func (p *Processor) baseParams(ctx context.Context, req donations.CheckoutRequest, mode stripe.CheckoutSessionMode) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(mode)),
		SuccessURL:        stripe.String(p.successURL(req.DonationID)),
		CancelURL:         stripe.String(p.cancelURL(req.CancelToken)),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.DonationID),
	}
	params.Context = ctx
	params.Metadata = map[string]string{
		"donation_id": req.DonationID,
		"donor_name":  req.Name,
	}
	return params
}

func (p *Processor) open(params *stripe.CheckoutSessionParams) (donations.Checkout, error) {
	s, err := p.newSession(params)
	if err != nil {
		return donations.Checkout{}, fmt.Errorf("create checkout session: %w", err)
	}
	return donations.Checkout{ID: s.ID, InitPoint: s.URL}, nil
}

// Lookup fetches the session with its payment or subscription expanded and
// reports what Stripe says about it.
func (p *Processor) Lookup(ctx context.Context, sessionID string) (donations.Lookup, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
			Expand: []*string{
				stripe.String("payment_intent"),
				stripe.String("subscription"),
			},
		},
	}
	s, err := p.getSession(sessionID, params)
	if err != nil {
		return donations.Lookup{}, fmt.Errorf("fetch checkout session %s: %w", sessionID, err)
	}

	l := donations.Lookup{
		DonationID: donationID(s),
		State:      sessionState(s),
		Ref:        donations.Reference{CheckoutID: s.ID},
	}
	if s.PaymentIntent != nil {
		l.Ref.PaymentID = s.PaymentIntent.ID
	}
	if s.Subscription != nil {
		l.Ref.SubscriptionID = s.Subscription.ID
	}
	return l, nil
}

// donationID prefers metadata and falls back to the client reference.
func donationID(s *stripe.CheckoutSession) string {
	if s.Metadata != nil {
		if id := strings.TrimSpace(s.Metadata["donation_id"]); id != "" {
			return id
		}
	}
	return strings.TrimSpace(s.ClientReferenceID)
}

func (p *Processor) successURL(id string) string {
	base := strings.TrimRight(p.cfg.AppURL, "/")
	// Stripe substitutes the literal {CHECKOUT_SESSION_ID}; it must stay unescaped.
	return base + "/donaciones/gracias?external_reference=" + url.QueryEscape(id) + "&session_id={CHECKOUT_SESSION_ID}"
}

func (p *Processor) cancelURL(token string) string {
	base := strings.TrimRight(p.cfg.APIURL, "/")
	return base + "/donations/cancel?token=" + url.QueryEscape(token)
}
