package adminapi

import (
	"net/http"
	"time"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type pageSummary struct {
	Slug        string           `json:"slug"`
	Category    content.Category `json:"category"`
	HeaderTitle string           `json:"header_title"`
	Sections    int              `json:"sections"`
	LastUpdated *time.Time       `json:"last_updated"`
}

// GET /admin/pages
func (h *Handler) ListPages(c *gin.Context) {
	pages, err := h.pages.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "could not load pages")
		return
	}
	out := make([]pageSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageSummary{
			Slug:        p.Slug,
			Category:    p.Category,
			HeaderTitle: p.HeaderTitle,
			Sections:    len(p.Sections),
			LastUpdated: p.LastUpdated,
		})
	}
	apiutil.OK(c, http.StatusOK, out)
}

// GET /admin/pages/:slug returns the stored page with its references
// resolved.
func (h *Handler) GetPage(c *gin.Context) {
	p, secs, err := h.pages.Load(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "could not load page")
		return
	}
	if secs == nil {
		secs = []content.Section{}
	}
	page := *p
	page.Sections = nil
	apiutil.OK(c, http.StatusOK, gin.H{"page": page, "sections": secs})
}

// PUT /admin/pages/:slug replaces the whole aggregate in one write.
func (h *Handler) PublishPage(c *gin.Context) {
	var in content.Page
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid page")
		return
	}
	in.Slug = c.Param("slug")

	if in.Category == "" {
		cur, _, err := h.pages.Load(c.Request.Context(), in.Slug)
		if err != nil {
			h.fail(c, err, "could not publish page")
			return
		}
		in.Category = cur.Category
	}

	if err := h.pages.Publish(c.Request.Context(), &in); err != nil {
		h.fail(c, err, "could not publish page")
		return
	}
	apiutil.OK(c, http.StatusOK, in)
}
