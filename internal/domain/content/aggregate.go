package content

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrInvalidPosition = errors.New("invalid section position")
)

// ResolveSections turns the stored entry list into the sections to display.
// References are looked up in globals and silently dropped when missing;
// inline sections without an id get "<type>-<index>". Output order follows
// entries exactly, so len(out) <= len(entries).
func ResolveSections(entries []Entry, globals map[string]Section) []Section {
	out := make([]Section, 0, len(entries))
	for i, e := range entries {
		if e.IsReference() {
			s, ok := globals[e.Ref]
			if !ok {
				continue
			}
			if s.ID == "" {
				s.ID = e.Ref
			}
			out = append(out, s)
			continue
		}
		s := *e.Inline
		if s.ID == "" {
			s.ID = syntheticID(s.Type, i)
		}
		if s.Body == nil {
			s.Body = NewBody(s.Type)
		}
		out = append(out, s)
	}
	return out
}

// ReferencedIDs lists the global section ids the page points at.
func ReferencedIDs(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.IsReference() && e.Ref != "" {
			ids = append(ids, e.Ref)
		}
	}
	return ids
}

func syntheticID(t Type, index int) string {
	return fmt.Sprintf("%s-%d", t, index)
}

// InlineAll converts resolved sections back into the stored form. After a
// publish every section is inline.
func InlineAll(sections []Section) Entries {
	out := make(Entries, 0, len(sections))
	for _, s := range sections {
		out = append(out, Inline(s))
	}
	return out
}

// Normalize prepares a page for persistence: missing section ids are
// synthesised and every section carries a payload, so content and settings
// are written as objects.
func Normalize(p *Page) {
	if p.Sections == nil {
		p.Sections = Entries{}
	}
	for i := range p.Sections {
		s := p.Sections[i].Inline
		if s == nil {
			continue
		}
		if s.ID == "" {
			s.ID = syntheticID(s.Type, i)
		}
		if s.Body == nil {
			s.Body = NewBody(s.Type)
		}
	}
	if p.Category == "" {
		p.Category = CategoryGeneral
	}
}

// IndexOf returns the position of the section with the given id or -1.
func IndexOf(sections []Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Insert places s at position at (clamped to the ends).
func Insert(sections []Section, s Section, at int) []Section {
	if at < 0 || at > len(sections) {
		at = len(sections)
	}
	sections = append(sections, Section{})
	copy(sections[at+1:], sections[at:])
	sections[at] = s
	return sections
}

// Remove deletes the section with id, keeping the order of the rest.
func Remove(sections []Section, id string) ([]Section, error) {
	i := IndexOf(sections, id)
	if i < 0 {
		return sections, ErrSectionNotFound
	}
	return append(sections[:i], sections[i+1:]...), nil
}

// Move relocates the section with id to position to.
func Move(sections []Section, id string, to int) ([]Section, error) {
	from := IndexOf(sections, id)
	if from < 0 {
		return sections, ErrSectionNotFound
	}
	if to < 0 || to >= len(sections) {
		return sections, ErrInvalidPosition
	}
	s := sections[from]
	sections = append(sections[:from], sections[from+1:]...)
	return Insert(sections, s, to), nil
}
