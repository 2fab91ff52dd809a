package adminapi

import (
	"net/http"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

// PUT /admin/classes inserts without id and merges with one.
func (h *Handler) UpsertClass(c *gin.Context) {
	var in catalog.ClassInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid class")
		return
	}
	out, err := h.catalog.UpsertClass(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "could not save class")
		return
	}
	apiutil.OK(c, http.StatusOK, out)
}

// DELETE /admin/classes/:id
func (h *Handler) DeleteClass(c *gin.Context) {
	if err := h.catalog.DeleteClass(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "could not delete class")
		return
	}
	apiutil.OK(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// PUT /admin/news
func (h *Handler) UpsertNews(c *gin.Context) {
	var in catalog.NewsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid news item")
		return
	}
	out, err := h.catalog.UpsertNews(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "could not save news item")
		return
	}
	apiutil.OK(c, http.StatusOK, out)
}

// DELETE /admin/news/:id
func (h *Handler) DeleteNews(c *gin.Context) {
	if err := h.catalog.DeleteNews(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "could not delete news item")
		return
	}
	apiutil.OK(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
