package stripewebhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"emb-site/internal/domain/donations"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
)

// Looker fetches the authoritative state of a checkout session.
type Looker interface {
	Lookup(ctx context.Context, sessionID string) (donations.Lookup, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, l donations.Lookup) (donations.Outcome, error)
}

type Handler struct {
	secret string
	lookup Looker
	svc    Reconciler
	log    *zap.Logger
}

func NewHandler(secret string, lookup Looker, svc Reconciler, log *zap.Logger) *Handler {
	return &Handler{secret: secret, lookup: lookup, svc: svc, log: log}
}

// Handle verifies the signature and reconciles the donation behind the
// event. Only a bad signature or unreadable body is answered with an error;
// everything past that is logged and acknowledged so Stripe does not keep
// retrying.
func (h *Handler) Handle(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("stripe signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil || session.ID == "" {
			h.log.Error("unparseable checkout session event", zap.String("event_id", event.ID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		h.reconcile(c.Request.Context(), string(event.Type), event.ID, session.ID)
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func (h *Handler) reconcile(ctx context.Context, eventType, eventID, sessionID string) {
	log := h.log.With(
		zap.String("event", eventType),
		zap.String("event_id", eventID),
		zap.String("session_id", sessionID))

	l, err := h.lookup.Lookup(ctx, sessionID)
	if err != nil {
		log.Error("checkout session lookup failed", zap.Error(err))
		return
	}
	if eventType == "checkout.session.async_payment_failed" && l.State == donations.StateOpen {
		l.State = donations.StateFailed
	}

	out, err := h.svc.Reconcile(ctx, l)
	if err != nil {
		log.Error("donation reconciliation failed", zap.String("donation_id", l.DonationID), zap.Error(err))
		return
	}
	log.Info("donation reconciled", zap.String("donation_id", l.DonationID), zap.String("outcome", string(out)))
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
