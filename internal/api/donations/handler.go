// Package donationsapi exposes the donation flow: the public checkout,
// return and cancel endpoints, and the admin list, export and manual verify.
package donationsapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/donations"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, in donations.CreateInput) (*donations.Donation, donations.Checkout, error)
	Get(ctx context.Context, id string) (*donations.Donation, error)
	List(ctx context.Context, status donations.Status) ([]donations.Donation, error)
	AwaitOrForce(ctx context.Context, id string, ref donations.Reference) (*donations.Donation, donations.Outcome, error)
	CancelByToken(ctx context.Context, token string) (string, donations.Outcome, error)
	Verify(ctx context.Context, id, paymentID string) (donations.Outcome, error)
}

const paymentPlatformError = "we could not reach the payment platform, please try again"

type Handler struct {
	svc    Service
	appURL string
	log    *zap.Logger
}

// NewHandler takes the public site URL the cancel link lands back on.
func NewHandler(svc Service, appURL string, log *zap.Logger) *Handler {
	return &Handler{svc: svc, appURL: appURL, log: log}
}

// POST /donations
func (h *Handler) Create(c *gin.Context) {
	var in createRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "name, email and amount are required")
		return
	}

	d, co, err := h.svc.Create(c.Request.Context(), donations.CreateInput{
		Name:   in.Name,
		Email:  in.Email,
		Amount: in.Amount,
		Type:   donations.Kind(in.Type),
	})
	switch {
	case errors.Is(err, donations.ErrInvalid):
		apiutil.Fail(c, http.StatusBadRequest, "invalid donation data")
		return
	case err != nil:
		h.log.Error("create donation", zap.Error(err))
		apiutil.Fail(c, http.StatusBadGateway, paymentPlatformError)
		return
	}

	apiutil.OK(c, http.StatusCreated, createResponse{ID: d.ID, InitPoint: co.InitPoint})
}

// GET /donations/:id/status
func (h *Handler) Status(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, donations.ErrNotFound) {
		apiutil.Fail(c, http.StatusNotFound, "donation not found")
		return
	}
	if err != nil {
		h.log.Error("donation status", zap.String("donation_id", c.Param("id")), zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load donation")
		return
	}
	apiutil.OK(c, http.StatusOK, toStatusDTO(d, ""))
}

// GET /donations/return?external_reference=&session_id=
//
// Called by the success page after the processor redirects back. It blocks
// for a bounded time waiting for the webhook, then falls back to the ids in
// the redirect.
func (h *Handler) Return(c *gin.Context) {
	id := c.Query("external_reference")
	if id == "" {
		apiutil.Fail(c, http.StatusBadRequest, "missing reference")
		return
	}
	ref := donations.Reference{
		CheckoutID:     c.Query("session_id"),
		PaymentID:      c.Query("payment_id"),
		SubscriptionID: c.Query("subscription_id"),
	}

	d, out, err := h.svc.AwaitOrForce(c.Request.Context(), id, ref)
	if errors.Is(err, donations.ErrNotFound) {
		apiutil.Fail(c, http.StatusNotFound, "donation not found")
		return
	}
	if err != nil {
		h.log.Error("donation return", zap.String("donation_id", id), zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not confirm donation")
		return
	}
	apiutil.OK(c, http.StatusOK, toStatusDTO(d, out))
}

// GET /donations/cancel?token=
//
// The processor's cancel URL. The browser ends up on the public donations
// page with the result in the query string.
func (h *Handler) Cancel(c *gin.Context) {
	id, out, err := h.svc.CancelByToken(c.Request.Context(), c.Query("token"))
	q := url.Values{}
	switch {
	case errors.Is(err, donations.ErrInvalidLink), errors.Is(err, donations.ErrNotFound):
		q.Set("cancelacion", "invalida")
	case err != nil:
		h.log.Error("cancel donation", zap.String("donation_id", id), zap.Error(err))
		q.Set("cancelacion", "error")
	default:
		q.Set("cancelacion", string(out))
	}
	c.Redirect(http.StatusFound, h.appURL+"/donaciones?"+q.Encode())
}

// GET /admin/donations?status=
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), donations.Status(c.Query("status")))
	if err != nil {
		h.log.Error("list donations", zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load donations")
		return
	}
	out := make([]DonationDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDonationDTO(d))
	}
	apiutil.OK(c, http.StatusOK, out)
}

// GET /admin/donations/verify?id=&payment_id=
func (h *Handler) Verify(c *gin.Context) {
	id, paymentID := c.Query("id"), c.Query("payment_id")
	out, err := h.svc.Verify(c.Request.Context(), id, paymentID)
	switch {
	case errors.Is(err, donations.ErrInvalid):
		apiutil.Fail(c, http.StatusBadRequest, "id and payment_id are required")
		return
	case errors.Is(err, donations.ErrNotFound):
		apiutil.Fail(c, http.StatusNotFound, "donation not found")
		return
	case errors.Is(err, donations.ErrNotPending):
		apiutil.Fail(c, http.StatusConflict, "donation is cancelled or rejected")
		return
	case err != nil:
		h.log.Error("verify donation", zap.String("donation_id", id), zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not verify donation")
		return
	}
	apiutil.OK(c, http.StatusOK, gin.H{"id": id, "outcome": out})
}
