package donationsapi

import (
	"time"

	"emb-site/internal/domain/donations"
)

type createRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Type   string `json:"type"`
}

type createResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// StatusDTO is what the public success page polls. It carries no personal
// data.
type StatusDTO struct {
	ID      string            `json:"id"`
	Status  donations.Status  `json:"status"`
	Label   string            `json:"label"`
	Outcome donations.Outcome `json:"outcome,omitempty"`
}

func toStatusDTO(d *donations.Donation, out donations.Outcome) StatusDTO {
	return StatusDTO{ID: d.ID, Status: d.Status, Label: d.Status.Label(), Outcome: out}
}

// DonationDTO is the admin list row.
type DonationDTO struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Amount         int64            `json:"amount"`
	Type           donations.Kind   `json:"type"`
	TypeLabel      string           `json:"type_label"`
	Status         donations.Status `json:"status"`
	StatusLabel    string           `json:"status_label"`
	ProcessorID    string           `json:"processor_id"`
	PaymentID      string           `json:"payment_id,omitempty"`
	SubscriptionID string           `json:"subscription_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	ApprovedAt     *time.Time       `json:"approved_at,omitempty"`
	CancelledAt    *time.Time       `json:"cancelled_at,omitempty"`
	RejectedAt     *time.Time       `json:"rejected_at,omitempty"`
}

func toDonationDTO(d donations.Donation) DonationDTO {
	return DonationDTO{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Amount:         d.Amount,
		Type:           d.Type,
		TypeLabel:      d.Type.Label(),
		Status:         d.Status,
		StatusLabel:    d.Status.Label(),
		ProcessorID:    d.ProcessorID,
		PaymentID:      deref(d.PaymentID),
		SubscriptionID: deref(d.SubscriptionID),
		CreatedAt:      d.CreatedAt,
		ApprovedAt:     d.ApprovedAt,
		CancelledAt:    d.CancelledAt,
		RejectedAt:     d.RejectedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
