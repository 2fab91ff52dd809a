package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var emptyObject = []byte("{}")

type wireSection struct {
	ID       string          `json:"id,omitempty"`
	Type     Type            `json:"type"`
	Content  json.RawMessage `json:"content"`
	Settings json.RawMessage `json:"settings"`
}

// MarshalJSON emits {id, type, content, settings}. content and settings are
// always objects, never null.
func (s Section) MarshalJSON() ([]byte, error) {
	body := s.Body
	if body == nil {
		body = NewBody(s.Type)
	}
	c, st := body.parts()

	cb, err := marshalObject(c)
	if err != nil {
		return nil, fmt.Errorf("section %s content: %w", s.ID, err)
	}
	sb, err := marshalObject(st)
	if err != nil {
		return nil, fmt.Errorf("section %s settings: %w", s.ID, err)
	}

	t := s.Type
	if t == "" {
		t = body.Kind()
	}
	return json.Marshal(wireSection{ID: s.ID, Type: t, Content: cb, Settings: sb})
}

func (s *Section) UnmarshalJSON(b []byte) error {
	var w wireSection
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	body := NewBody(w.Type)
	if err := decodeParts(body, w.Content, w.Settings); err != nil {
		return fmt.Errorf("section %q (%s): %w", w.ID, w.Type, err)
	}
	s.ID = w.ID
	s.Type = w.Type
	s.Body = body
	return nil
}

// Apply replaces the section's content and, when settings is non-nil, its
// settings. Nil settings keeps the existing ones.
func (s *Section) Apply(content, settings json.RawMessage) error {
	cur, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var w wireSection
	if err := json.Unmarshal(cur, &w); err != nil {
		return err
	}
	if content != nil {
		w.Content = content
	}
	if settings != nil {
		w.Settings = settings
	}

	body := NewBody(w.Type)
	if err := decodeParts(body, w.Content, w.Settings); err != nil {
		return err
	}
	s.Body = body
	return nil
}

func decodeParts(body Body, content, settings json.RawMessage) error {
	c, st := body.parts()
	if !isNull(content) {
		if err := json.Unmarshal(content, c); err != nil {
			return fmt.Errorf("content: %w", err)
		}
	}
	if !isNull(settings) {
		if err := json.Unmarshal(settings, st); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	return nil
}

func marshalObject(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if isNull(b) {
		return emptyObject, nil
	}
	return b, nil
}

func isNull(b []byte) bool {
	t := bytes.TrimSpace(b)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Amount is a monetary figure stored by the admin UI either as a JSON number
// or as a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*a = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*a = Amount(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", s, err)
	}
	*a = Amount(f)
	return nil
}
