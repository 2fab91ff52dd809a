// Package editor holds the in-memory page aggregates admins are editing.
// A Session replaces the shared global dirty flag: every edit goes through
// it and it is dropped once the admin leaves the page.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"emb-site/internal/domain/content"
)

var (
	ErrUnsavedChanges = errors.New("page has unsaved changes")
	ErrDuplicateID    = errors.New("section id already in use")
	ErrUnknownType    = errors.New("unknown section type")
)

// Publisher persists a whole page aggregate.
type Publisher interface {
	Publish(ctx context.Context, p *content.Page) error
}

// Session is one admin's working copy of one page.
type Session struct {
	mu         sync.Mutex
	page       content.Page
	sections   []content.Section
	dirty      map[string]bool
	metaDirty  bool
	orderDirty bool
}

func NewSession(p *content.Page, sections []content.Section) *Session {
	cp := *p
	secs := make([]content.Section, len(sections))
	copy(secs, sections)
	return &Session{page: cp, sections: secs, dirty: map[string]bool{}}
}

// Snapshot is a consistent read of the session state.
type Snapshot struct {
	Page     content.Page      `json:"page"`
	Sections []content.Section `json:"sections"`
	Dirty    bool              `json:"dirty"`
	// DirtySections lists the ids of sections edited since the last publish.
	DirtySections []string `json:"dirty_sections"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	secs := make([]content.Section, len(s.sections))
	copy(secs, s.sections)
	ids := []string{}
	for _, sec := range s.sections {
		if s.dirty[sec.ID] {
			ids = append(ids, sec.ID)
		}
	}
	p := s.page
	p.Sections = nil
	return Snapshot{Page: p, Sections: secs, Dirty: s.isDirty(), DirtySections: ids}
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isDirty()
}

func (s *Session) isDirty() bool {
	return s.metaDirty || s.orderDirty || len(s.dirty) > 0
}

// OnChange replaces the content of one section. A nil settings keeps the
// current settings.
func (s *Session) OnChange(id string, newContent, newSettings json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := content.IndexOf(s.sections, id)
	if i < 0 {
		return content.ErrSectionNotFound
	}
	sec := s.sections[i]
	if err := sec.Apply(newContent, newSettings); err != nil {
		return err
	}
	s.sections[i] = sec
	s.dirty[id] = true
	return nil
}

// Add inserts an empty section of type t at position at (-1 appends) and
// returns it.
func (s *Session) Add(t content.Type, id string, at int) (content.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !t.Known() {
		return content.Section{}, ErrUnknownType
	}
	if id == "" || content.IndexOf(s.sections, id) >= 0 {
		return content.Section{}, ErrDuplicateID
	}
	sec := content.New(id, t)
	s.sections = content.Insert(s.sections, sec, at)
	s.dirty[id] = true
	s.orderDirty = true
	return sec, nil
}

func (s *Session) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secs, err := content.Remove(s.sections, id)
	if err != nil {
		return err
	}
	s.sections = secs
	delete(s.dirty, id)
	s.orderDirty = true
	return nil
}

func (s *Session) Move(id string, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secs, err := content.Move(s.sections, id, to)
	if err != nil {
		return err
	}
	s.sections = secs
	s.orderDirty = true
	return nil
}

func (s *Session) UpdateMeta(m content.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.SetMeta(m)
	s.metaDirty = true
}

// Publish sends the whole aggregate. Dirty flags are cleared only when the
// write succeeds.
func (s *Session) Publish(ctx context.Context, pub Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.page
	p.Sections = content.InlineAll(s.sections)
	if err := pub.Publish(ctx, &p); err != nil {
		return err
	}

	s.page = p
	s.page.Sections = nil
	s.sections = content.ResolveSections(p.Sections, nil)
	s.dirty = map[string]bool{}
	s.metaDirty = false
	s.orderDirty = false
	return nil
}

// Leave reports whether the admin may navigate away. Unsaved changes block
// unless confirm is set.
func (s *Session) Leave(confirm bool) error {
	if s.Dirty() && !confirm {
		return ErrUnsavedChanges
	}
	return nil
}
