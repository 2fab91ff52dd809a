// Package settings holds the fixed-key site documents: general site data,
// the admin allow-list and the editable option lists.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Fixed document keys.
const (
	KeyGeneral     = "general"
	KeyAdmins      = "admins"
	KeyInstruments = "instruments"
	KeyTeachers    = "teachers"
)

var (
	ErrNotFound    = errors.New("settings document not found")
	ErrUnknownList = errors.New("unknown list")
)

// Document is one row of the settings table.
type Document struct {
	Key       string         `gorm:"primaryKey;size:64" json:"key"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"data"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Document) TableName() string { return "settings" }

// General is the public footer/SEO document. Sender fields select the
// identity transactional emails go out with.
type General struct {
	SiteName        string            `json:"site_name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	Social          map[string]string `json:"social"`
	MetaTitle       string            `json:"meta_title"`
	MetaDescription string            `json:"meta_description"`
	SenderName      string            `json:"sender_name"`
	SenderEmail     string            `json:"sender_email"`
	// NotifyEmail receives the admin half of every email pair.
	NotifyEmail string `json:"notify_email"`
}

type Admins struct {
	Emails []string `json:"emails"`
}

// List is a whole-replace string list. Values are kept as given, duplicates
// included.
type List struct {
	List []string `json:"list"`
}

type Store interface {
	Get(ctx context.Context, key string) (*Document, error)
	Put(ctx context.Context, key string, data []byte) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

func (s *Service) load(ctx context.Context, key string, v any) error {
	doc, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(doc.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(doc.Data, v); err != nil {
		return fmt.Errorf("decode settings/%s: %w", key, err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, key, b)
}

// General returns the general document, empty when never saved.
func (s *Service) General(ctx context.Context) (General, error) {
	var g General
	err := s.load(ctx, KeyGeneral, &g)
	if g.Social == nil {
		g.Social = map[string]string{}
	}
	return g, err
}

func (s *Service) SaveGeneral(ctx context.Context, g General) error {
	return s.save(ctx, KeyGeneral, g)
}

func (s *Service) Admins(ctx context.Context) (Admins, error) {
	var a Admins
	err := s.load(ctx, KeyAdmins, &a)
	if a.Emails == nil {
		a.Emails = []string{}
	}
	return a, err
}

// SaveAdmins stores the allow-list lower-cased and without blanks.
func (s *Service) SaveAdmins(ctx context.Context, emails []string) error {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			out = append(out, e)
		}
	}
	return s.save(ctx, KeyAdmins, Admins{Emails: out})
}

// IsAdmin reports whether email is on the allow-list.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	a, err := s.Admins(ctx)
	if err != nil {
		return false, err
	}
	for _, e := range a.Emails {
		if normalizeEmail(e) == email {
			return true, nil
		}
	}
	return false, nil
}

func listKey(name string) (string, error) {
	switch name {
	case KeyInstruments, KeyTeachers:
		return name, nil
	}
	return "", ErrUnknownList
}

func (s *Service) List(ctx context.Context, name string) ([]string, error) {
	key, err := listKey(name)
	if err != nil {
		return nil, err
	}
	var l List
	if err := s.load(ctx, key, &l); err != nil {
		return nil, err
	}
	if l.List == nil {
		l.List = []string{}
	}
	return l.List, nil
}

// ReplaceList overwrites the stored list in one write.
func (s *Service) ReplaceList(ctx context.Context, name string, values []string) error {
	key, err := listKey(name)
	if err != nil {
		return err
	}
	if values == nil {
		values = []string{}
	}
	return s.save(ctx, key, List{List: values})
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
