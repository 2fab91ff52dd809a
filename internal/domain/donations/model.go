package donations

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is allowed out of st.
func (st Status) Terminal() bool { return st != StatusPending }

type Kind string

const (
	KindOneTime      Kind = "one-time"
	KindSubscription Kind = "subscription"
)

func (k Kind) Valid() bool { return k == KindOneTime || k == KindSubscription }

// Donation tracks one checkout against the payment processor. The id is
// generated before the processor is called and travels as its external
// reference.
type Donation struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"not null;index" json:"email"`
	Amount int64  `gorm:"not null" json:"amount"`
	Type   Kind   `gorm:"type:varchar(16);not null" json:"type"`
	Status Status `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`

	ProcessorID    string  `gorm:"index" json:"processor_id"`
	PaymentID      *string `json:"payment_id,omitempty"`
	SubscriptionID *string `json:"subscription_id,omitempty"`

	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Reference carries the processor-side ids that prove or describe a payment.
type Reference struct {
	CheckoutID     string
	PaymentID      string
	SubscriptionID string
}

// Outcome is what a reconciliation attempt did.
type Outcome string

const (
	OutcomeApproved        Outcome = "approved"
	OutcomeAlreadyApproved Outcome = "already_approved"
	OutcomeCancelled       Outcome = "cancelled"
	OutcomeRejected        Outcome = "rejected"
	OutcomeUnchanged       Outcome = "unchanged"
	OutcomePending         Outcome = "pending"
)

// Source names the producer of an approval, for logs.
type Source string

const (
	SourceWebhook Source = "webhook"
	SourceReturn  Source = "return"
	SourceManual  Source = "manual"
)

// ProcessorState is the processor's view of a checkout after an
// authoritative fetch.
type ProcessorState int

const (
	StateOpen ProcessorState = iota
	StatePaid
	StateFailed
	StateExpired
)

// Lookup is the result of fetching a checkout from the processor.
type Lookup struct {
	DonationID string
	State      ProcessorState
	Ref        Reference
}
