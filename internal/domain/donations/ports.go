package donations

import "context"

type Store interface {
	Create(ctx context.Context, d *Donation) error
	Get(ctx context.Context, id string) (*Donation, error)
	GetByProcessorID(ctx context.Context, processorID string) (*Donation, error)
	List(ctx context.Context, status Status) ([]Donation, error)
	// Transition applies changes and sets status to to, only while the
	// stored status is from. It reports whether a row was written.
	Transition(ctx context.Context, id string, from, to Status, changes map[string]interface{}) (bool, error)
}

// CheckoutRequest is what the processor needs to open a checkout.
type CheckoutRequest struct {
	DonationID  string
	Name        string
	Email       string
	Amount      int64
	CancelToken string
}

type Checkout struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type Processor interface {
	CreatePreference(ctx context.Context, req CheckoutRequest) (Checkout, error)
	CreateSubscription(ctx context.Context, req CheckoutRequest) (Checkout, error)
}

// Notifier sends the donor and admin email pair for a transition.
type Notifier interface {
	DonationApproved(ctx context.Context, d Donation) error
	DonationCancelled(ctx context.Context, d Donation) error
}

// LinkSigner signs the donation id carried by cancel links.
type LinkSigner interface {
	Sign(id string) (string, error)
	Verify(token string) (string, error)
}
