package content

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Category drives page-level defaults, most notably the contact form kind.
type Category string

const (
	CategoryHome      Category = "home"
	CategoryClasses   Category = "clases"
	CategoryNews      Category = "noticias"
	CategoryGallery   Category = "galeria"
	CategoryContact   Category = "contacto"
	CategoryDonations Category = "donaciones"
	CategoryGeneral   Category = "general"
)

// HomeSlug is the route key of the landing page. Publishing any page also
// invalidates it.
const HomeSlug = "home"

// Page is the editable unit behind one route. It is written only as a whole.
type Page struct {
	ID       uint     `gorm:"primaryKey" json:"-"`
	Slug     string   `gorm:"not null;uniqueIndex" json:"slug"`
	Category Category `gorm:"type:varchar(32);not null;default:'general'" json:"category"`
	Sections Entries  `gorm:"type:jsonb;not null;default:'[]'" json:"sections"`

	HeaderTitle       string `json:"header_title"`
	HeaderDescription string `json:"header_description"`
	HeaderImageURL    string `gorm:"column:header_image_url" json:"header_image_url"`
	MetaTitle         string `json:"meta_title"`
	MetaDescription   string `json:"meta_description"`

	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// Meta is the flat header/SEO part of a page.
type Meta struct {
	HeaderTitle       string `json:"header_title"`
	HeaderDescription string `json:"header_description"`
	HeaderImageURL    string `json:"header_image_url"`
	MetaTitle         string `json:"meta_title"`
	MetaDescription   string `json:"meta_description"`
}

func (p *Page) Meta() Meta {
	return Meta{
		HeaderTitle:       p.HeaderTitle,
		HeaderDescription: p.HeaderDescription,
		HeaderImageURL:    p.HeaderImageURL,
		MetaTitle:         p.MetaTitle,
		MetaDescription:   p.MetaDescription,
	}
}

func (p *Page) SetMeta(m Meta) {
	p.HeaderTitle = m.HeaderTitle
	p.HeaderDescription = m.HeaderDescription
	p.HeaderImageURL = m.HeaderImageURL
	p.MetaTitle = m.MetaTitle
	p.MetaDescription = m.MetaDescription
}

// Entry is one element of Page.Sections: either a reference to a global
// section (legacy, serialised as a bare string) or an inline section.
type Entry struct {
	Ref    string
	Inline *Section
}

func Reference(id string) Entry { return Entry{Ref: id} }

func Inline(s Section) Entry { return Entry{Inline: &s} }

func (e Entry) IsReference() bool { return e.Inline == nil }

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Inline != nil {
		return json.Marshal(e.Inline)
	}
	return json.Marshal(e.Ref)
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	t := bytes.TrimSpace(b)
	if len(t) == 0 {
		return errors.New("empty section entry")
	}
	switch t[0] {
	case '"':
		var id string
		if err := json.Unmarshal(t, &id); err != nil {
			return err
		}
		*e = Entry{Ref: id}
		return nil
	case '{':
		var s Section
		if err := json.Unmarshal(t, &s); err != nil {
			return err
		}
		*e = Entry{Inline: &s}
		return nil
	default:
		return fmt.Errorf("section entry must be a string or an object, got %s", string(t[:1]))
	}
}

// Entries is stored as a single jsonb array so a publish replaces it in one
// write.
type Entries []Entry

func (es Entries) Value() (driver.Value, error) {
	if es == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Entry(es))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (es *Entries) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*es = Entries{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("entries: unsupported scan type %T", src)
	}
	var out []Entry
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*es = out
	return nil
}

// GlobalSection is a row of the legacy "sections" collection that pages may
// reference by id.
type GlobalSection struct {
	ID       string         `gorm:"primaryKey" json:"id"`
	Type     Type           `gorm:"type:varchar(32);not null" json:"type"`
	Content  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"content"`
	Settings datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"settings"`
}

func (GlobalSection) TableName() string { return "sections" }

// Section decodes the row into the typed model.
func (g GlobalSection) Section() (Section, error) {
	body := NewBody(g.Type)
	if err := decodeParts(body, json.RawMessage(g.Content), json.RawMessage(g.Settings)); err != nil {
		return Section{}, fmt.Errorf("global section %s: %w", g.ID, err)
	}
	return Section{ID: g.ID, Type: g.Type, Body: body}, nil
}
