package donations

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("donation not found")
	ErrNotPending  = errors.New("donation is no longer pending")
	ErrInvalid     = errors.New("invalid donation request")
	ErrProcessor   = errors.New("payment platform error")
	ErrInvalidLink = errors.New("invalid or expired link")
)

// How long the return page waits for the webhook before forcing approval.
const (
	returnWait = 10 * time.Second
	returnPoll = time.Second
)

type Service struct {
	store  Store
	proc   Processor
	notify Notifier
	links  LinkSigner
	log    *zap.Logger

	now  func() time.Time
	wait time.Duration
	poll time.Duration
}

func NewService(store Store, proc Processor, notify Notifier, links LinkSigner, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		proc:   proc,
		notify: notify,
		links:  links,
		log:    log,
		now:    time.Now,
		wait:   returnWait,
		poll:   returnPoll,
	}
}

type CreateInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
	Type   Kind   `json:"type"`
}

func (in *CreateInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Type == "" {
		in.Type = KindOneTime
	}
	if in.Name == "" || in.Amount <= 0 || !in.Type.Valid() {
		return ErrInvalid
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return ErrInvalid
	}
	return nil
}

// Create opens a processor checkout and records the pending donation. When
// the processor call fails nothing is stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Donation, Checkout, error) {
	if err := in.normalize(); err != nil {
		return nil, Checkout{}, err
	}

	id := uuid.NewString()
	token, err := s.links.Sign(id)
	if err != nil {
		return nil, Checkout{}, fmt.Errorf("sign cancel link: %w", err)
	}
	req := CheckoutRequest{
		DonationID:  id,
		Name:        in.Name,
		Email:       in.Email,
		Amount:      in.Amount,
		CancelToken: token,
	}

	var co Checkout
	if in.Type == KindSubscription {
		co, err = s.proc.CreateSubscription(ctx, req)
	} else {
		co, err = s.proc.CreatePreference(ctx, req)
	}
	if err != nil {
		s.log.Error("processor rejected checkout",
			zap.String("donation_id", id),
			zap.String("type", string(in.Type)),
			zap.Error(err))
		return nil, Checkout{}, fmt.Errorf("%w: %v", ErrProcessor, err)
	}

	d := &Donation{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Amount:      in.Amount,
		Type:        in.Type,
		Status:      StatusPending,
		ProcessorID: co.ID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		s.log.Error("checkout opened but donation not stored",
			zap.String("donation_id", id),
			zap.String("processor_id", co.ID),
			zap.Error(err))
		return nil, Checkout{}, err
	}

	s.log.Info("donation created",
		zap.String("donation_id", id),
		zap.String("type", string(in.Type)),
		zap.Int64("amount", in.Amount))
	return d, co, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Donation, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status) ([]Donation, error) {
	return s.store.List(ctx, status)
}

// Approve moves a pending donation to approved. Every approval producer ends
// here. Repeated calls are no-ops returning OutcomeAlreadyApproved, and the
// confirmation emails go out only from the call that wrote the transition.
func (s *Service) Approve(ctx context.Context, id string, ref Reference, src Source) (Outcome, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	switch d.Status {
	case StatusApproved:
		s.backfill(ctx, d, ref)
		return OutcomeAlreadyApproved, nil
	case StatusPending:
	default:
		return OutcomeUnchanged, ErrNotPending
	}

	now := s.now().UTC()
	changes := map[string]interface{}{"approved_at": now}
	refChanges(changes, d, ref)

	ok, err := s.store.Transition(ctx, id, StatusPending, StatusApproved, changes)
	if err != nil {
		return "", err
	}
	if !ok {
		cur, err := s.store.Get(ctx, id)
		if err != nil {
			return "", err
		}
		if cur.Status == StatusApproved {
			return OutcomeAlreadyApproved, nil
		}
		return OutcomeUnchanged, ErrNotPending
	}

	d.Status = StatusApproved
	d.ApprovedAt = &now
	applyRef(d, changes)

	s.log.Info("donation approved",
		zap.String("donation_id", id),
		zap.String("source", string(src)))

	if err := s.notify.DonationApproved(ctx, *d); err != nil {
		s.log.Warn("approval emails failed", zap.String("donation_id", id), zap.Error(err))
	}
	return OutcomeApproved, nil
}

// backfill stores processor ids learned after an approval that lacked them,
// e.g. a forced approval followed by the webhook.
func (s *Service) backfill(ctx context.Context, d *Donation, ref Reference) {
	changes := map[string]interface{}{}
	refChanges(changes, d, ref)
	if len(changes) == 0 {
		return
	}
	if _, err := s.store.Transition(ctx, d.ID, StatusApproved, StatusApproved, changes); err != nil {
		s.log.Warn("backfill processor ids", zap.String("donation_id", d.ID), zap.Error(err))
	}
}

func refChanges(changes map[string]interface{}, d *Donation, ref Reference) {
	if ref.PaymentID != "" && (d.PaymentID == nil || *d.PaymentID == "") {
		changes["payment_id"] = ref.PaymentID
	}
	if ref.SubscriptionID != "" && (d.SubscriptionID == nil || *d.SubscriptionID == "") {
		changes["subscription_id"] = ref.SubscriptionID
	}
}

func applyRef(d *Donation, changes map[string]interface{}) {
	if v, ok := changes["payment_id"].(string); ok {
		d.PaymentID = &v
	}
	if v, ok := changes["subscription_id"].(string); ok {
		d.SubscriptionID = &v
	}
}

// Reject records a processor-side failure.
func (s *Service) Reject(ctx context.Context, id string) (Outcome, error) {
	ok, err := s.store.Transition(ctx, id, StatusPending, StatusRejected,
		map[string]interface{}{"rejected_at": s.now().UTC()})
	if err != nil {
		return "", err
	}
	if !ok {
		return OutcomeUnchanged, nil
	}
	s.log.Info("donation rejected", zap.String("donation_id", id))
	return OutcomeRejected, nil
}

// Cancel moves a pending donation to cancelled. Donations in any other
// status are left alone.
func (s *Service) Cancel(ctx context.Context, id string) (Outcome, error) {
	return s.cancel(ctx, id, true)
}

// CancelByToken cancels the donation named by a signed cancel link.
func (s *Service) CancelByToken(ctx context.Context, token string) (string, Outcome, error) {
	id, err := s.links.Verify(token)
	if err != nil {
		return "", "", ErrInvalidLink
	}
	out, err := s.Cancel(ctx, id)
	return id, out, err
}

func (s *Service) cancel(ctx context.Context, id string, notify bool) (Outcome, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if d.Status.Terminal() {
		s.log.Info("cancel ignored", zap.String("donation_id", id), zap.String("status", string(d.Status)))
		return OutcomeUnchanged, nil
	}

	now := s.now().UTC()
	ok, err := s.store.Transition(ctx, id, StatusPending, StatusCancelled,
		map[string]interface{}{"cancelled_at": now})
	if err != nil {
		return "", err
	}
	if !ok {
		return OutcomeUnchanged, nil
	}

	d.Status = StatusCancelled
	d.CancelledAt = &now
	s.log.Info("donation cancelled", zap.String("donation_id", id))

	if notify {
		if err := s.notify.DonationCancelled(ctx, *d); err != nil {
			s.log.Warn("cancellation emails failed", zap.String("donation_id", id), zap.Error(err))
		}
	}
	return OutcomeCancelled, nil
}

// Reconcile applies an authoritative processor lookup.
func (s *Service) Reconcile(ctx context.Context, l Lookup) (Outcome, error) {
	id := l.DonationID
	if id == "" {
		d, err := s.store.GetByProcessorID(ctx, l.Ref.CheckoutID)
		if err != nil {
			return "", err
		}
		id = d.ID
	}

	switch l.State {
	case StatePaid:
		return s.Approve(ctx, id, l.Ref, SourceWebhook)
	case StateFailed:
		return s.Reject(ctx, id)
	case StateExpired:
		return s.cancel(ctx, id, false)
	default:
		return OutcomePending, nil
	}
}

// AwaitOrForce backs the browser return page. It waits a bounded time for
// another producer to approve the donation; if it is still pending after
// that, the checkout id from the redirect is taken as proof and the approval
// is forced. The checkout id must match the one stored at creation.
func (s *Service) AwaitOrForce(ctx context.Context, id string, ref Reference) (*Donation, Outcome, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if d.Status.Terminal() {
		return d, outcomeFor(d.Status), nil
	}

	deadline := time.NewTimer(s.wait)
	defer deadline.Stop()
	tick := time.NewTicker(s.poll)
	defer tick.Stop()

wait:
	for {
		select {
		case <-ctx.Done():
			return d, OutcomePending, nil
		case <-deadline.C:
			break wait
		case <-tick.C:
			d, err = s.store.Get(ctx, id)
			if err != nil {
				return nil, "", err
			}
			if d.Status.Terminal() {
				return d, outcomeFor(d.Status), nil
			}
		}
	}

	if ref.CheckoutID == "" || (d.ProcessorID != "" && ref.CheckoutID != d.ProcessorID) {
		s.log.Warn("return without matching checkout id; left pending",
			zap.String("donation_id", id),
			zap.String("checkout_id", ref.CheckoutID))
		return d, OutcomePending, nil
	}

	out, err := s.Approve(ctx, id, ref, SourceReturn)
	if err != nil && !errors.Is(err, ErrNotPending) {
		return nil, "", err
	}
	d, err = s.store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if out == OutcomeUnchanged {
		out = outcomeFor(d.Status)
	}
	return d, out, nil
}

// Verify is the manual reconciliation path: both ids are supplied
// explicitly and the approval is forced. The processor id is recorded as a
// subscription id or a payment id according to the donation type.
func (s *Service) Verify(ctx context.Context, id, processorID string) (Outcome, error) {
	if id == "" || processorID == "" {
		return "", ErrInvalid
	}
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	ref := Reference{PaymentID: processorID}
	if d.Type == KindSubscription {
		ref = Reference{SubscriptionID: processorID}
	}
	return s.Approve(ctx, id, ref, SourceManual)
}

func outcomeFor(st Status) Outcome {
	switch st {
	case StatusApproved:
		return OutcomeAlreadyApproved
	case StatusCancelled:
		return OutcomeCancelled
	case StatusRejected:
		return OutcomeRejected
	}
	return OutcomePending
}
