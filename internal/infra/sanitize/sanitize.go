// Package sanitize strips unsafe HTML from admin and visitor input.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richOnce sync.Once
	rich     *bluemonday.Policy
	strict   = bluemonday.StrictPolicy()
)

func richPolicy() *bluemonday.Policy {
	richOnce.Do(func() {
		rich = bluemonday.UGCPolicy()
		rich.AllowElements("u", "s", "mark")
		rich.RequireNoFollowOnLinks(true)
	})
	return rich
}

// Rich keeps basic formatting. Used for section text edited in the
// dashboard.
func Rich(s string) string {
	if s == "" {
		return ""
	}
	return richPolicy().Sanitize(s)
}

// Plain removes all markup and returns plain text. The policy output is
// entity-encoded, so it is decoded again; escaping is left to whoever
// renders the value.
func Plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
