package stripe

import (
	"strings"

	"emb-site/internal/domain/donations"

	"github.com/stripe/stripe-go/v75"
)

// normalizeSubscriptionStatus folds Stripe's subscription statuses into the
// few the donation flow cares about.
func normalizeSubscriptionStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "active", "trialing":
		return "active"
	case "past_due", "unpaid", "incomplete":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}

// sessionState interprets an expanded checkout session.
func sessionState(s *stripe.CheckoutSession) donations.ProcessorState {
	if s.Status == stripe.CheckoutSessionStatusExpired {
		return donations.StateExpired
	}

	if s.Mode == stripe.CheckoutSessionModeSubscription {
		if s.Subscription == nil {
			return donations.StateOpen
		}
		switch normalizeSubscriptionStatus(string(s.Subscription.Status)) {
		case "active":
			return donations.StatePaid
		case "canceled":
			return donations.StateFailed
		}
		return donations.StateOpen
	}

	switch s.PaymentStatus {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return donations.StatePaid
	}
	if s.PaymentIntent != nil && s.PaymentIntent.Status == stripe.PaymentIntentStatusCanceled {
		return donations.StateFailed
	}
	return donations.StateOpen
}
