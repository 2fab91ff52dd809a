// Package galleryapi serves the admin gallery operations. The public list
// lives with the other public reads.
package galleryapi

import (
	"context"
	"errors"
	"net/http"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/gallery"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]gallery.Image, error)
	Add(ctx context.Context, rawURL, caption, alt string) (*gallery.Image, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) ([]gallery.Image, error)
	Caption(ctx context.Context, id, caption, alt string) error
}

type Handler struct {
	svc Service
	log *zap.Logger
}

func NewHandler(svc Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, gallery.ErrNotFound):
		apiutil.Fail(c, http.StatusNotFound, "image not found")
	case errors.Is(err, gallery.ErrInvalidURL), errors.Is(err, gallery.ErrBadPermutation):
		apiutil.Fail(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Error(msg, zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, msg)
	}
}

// POST /admin/gallery {url, caption, alt}
func (h *Handler) Add(c *gin.Context) {
	var in struct {
		URL     string `json:"url" binding:"required"`
		Caption string `json:"caption"`
		Alt     string `json:"alt"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "url is required")
		return
	}
	img, err := h.svc.Add(c.Request.Context(), in.URL, in.Caption, in.Alt)
	if err != nil {
		h.fail(c, err, "could not add image")
		return
	}
	apiutil.OK(c, http.StatusCreated, img)
}

// DELETE /admin/gallery/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "could not delete image")
		return
	}
	h.list(c)
}

// PUT /admin/gallery/order {ids}
func (h *Handler) Reorder(c *gin.Context) {
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "ids are required")
		return
	}
	imgs, err := h.svc.Reorder(c.Request.Context(), in.IDs)
	if err != nil {
		h.fail(c, err, "could not reorder gallery")
		return
	}
	apiutil.OK(c, http.StatusOK, imgs)
}

// PATCH /admin/gallery/:id {caption, alt}
func (h *Handler) Caption(c *gin.Context) {
	var in struct {
		Caption string `json:"caption"`
		Alt     string `json:"alt"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid caption")
		return
	}
	if err := h.svc.Caption(c.Request.Context(), c.Param("id"), in.Caption, in.Alt); err != nil {
		h.fail(c, err, "could not update caption")
		return
	}
	h.list(c)
}

func (h *Handler) list(c *gin.Context) {
	imgs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "could not load gallery")
		return
	}
	if imgs == nil {
		imgs = []gallery.Image{}
	}
	apiutil.OK(c, http.StatusOK, imgs)
}
