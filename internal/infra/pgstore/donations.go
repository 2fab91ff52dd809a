package pgstore

import (
	"context"
	"errors"

	"emb-site/internal/domain/donations"

	"gorm.io/gorm"
)

type Donations struct {
	db *gorm.DB
}

func NewDonations(db *gorm.DB) *Donations {
	return &Donations{db: db}
}

func (s *Donations) Create(ctx context.Context, d *donations.Donation) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *Donations) Get(ctx context.Context, id string) (*donations.Donation, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Donations) GetByProcessorID(ctx context.Context, processorID string) (*donations.Donation, error) {
	if processorID == "" {
		return nil, donations.ErrNotFound
	}
	return s.first(ctx, "processor_id = ?", processorID)
}

func (s *Donations) first(ctx context.Context, query string, arg string) (*donations.Donation, error) {
	var d donations.Donation
	if err := s.db.WithContext(ctx).Where(query, arg).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, donations.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns newest first; an empty status lists everything.
func (s *Donations) List(ctx context.Context, status donations.Status) ([]donations.Donation, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []donations.Donation
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Transition is a single conditional UPDATE, so two producers racing on the
// same donation cannot both see their write applied.
func (s *Donations) Transition(ctx context.Context, id string, from, to donations.Status, changes map[string]interface{}) (bool, error) {
	updates := make(map[string]interface{}, len(changes)+1)
	for k, v := range changes {
		updates[k] = v
	}
	updates["status"] = to

	res := s.db.WithContext(ctx).
		Model(&donations.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
