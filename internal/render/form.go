package render

import (
	"strings"

	"emb-site/internal/domain/content"
)

// Contact form categories.
const (
	FormClasses = "clases"
	FormGeneral = "general"
)

// NormalizeForm maps the accepted spellings onto a form category. ok is false
// for anything else.
func NormalizeForm(v string) (form string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "inscripcion", "clases":
		return FormClasses, true
	case "contacto", "general":
		return FormGeneral, true
	}
	return "", false
}

// ResolveForm picks the contact form category. The first tier holding a
// recognised value wins: URL override, then the stored form type, then the
// page category.
func ResolveForm(override, stored string, category content.Category) string {
	if f, ok := NormalizeForm(override); ok {
		return f
	}
	if f, ok := NormalizeForm(stored); ok {
		return f
	}
	if f, ok := NormalizeForm(string(category)); ok {
		return f
	}
	return FormGeneral
}

func storedForm(b *content.Contact) string {
	if b.Settings.FormType != "" {
		return b.Settings.FormType
	}
	return b.Content.FormType
}
