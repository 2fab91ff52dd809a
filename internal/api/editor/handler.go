// Package editorapi drives an admin's editor session over HTTP. Every edit
// lands in the in-memory session; only publish writes to storage.
package editorapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/app/http/middleware"
	"emb-site/internal/domain/content"
	"emb-site/internal/editor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	reg *editor.Registry
	pub editor.Publisher
	log *zap.Logger
}

func NewHandler(reg *editor.Registry, pub editor.Publisher, log *zap.Logger) *Handler {
	return &Handler{reg: reg, pub: pub, log: log}
}

func (h *Handler) session(c *gin.Context) (*editor.Session, bool) {
	s, err := h.reg.Open(c.Request.Context(), middleware.AdminEmail(c), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		apiutil.Fail(c, http.StatusNotFound, "page not found")
	case errors.Is(err, content.ErrSectionNotFound):
		apiutil.Fail(c, http.StatusNotFound, "section not found")
	case errors.Is(err, content.ErrInvalidPosition):
		apiutil.Fail(c, http.StatusBadRequest, "invalid position")
	case errors.Is(err, editor.ErrUnknownType):
		apiutil.Fail(c, http.StatusBadRequest, "unknown section type")
	case errors.Is(err, editor.ErrDuplicateID):
		apiutil.Fail(c, http.StatusConflict, "section id already in use")
	case errors.Is(err, editor.ErrUnsavedChanges):
		apiutil.Fail(c, http.StatusConflict, "there are unsaved changes")
	default:
		h.log.Error("editor request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("admin", middleware.AdminEmail(c)),
			zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not complete the edit")
	}
}

// GET /admin/editor/:slug
func (h *Handler) Open(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	apiutil.OK(c, http.StatusOK, s.Snapshot())
}

// PATCH /admin/editor/:slug/sections/:id {content, settings?}
func (h *Handler) Change(c *gin.Context) {
	var in struct {
		Content  json.RawMessage `json:"content"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Content) == 0 {
		apiutil.Fail(c, http.StatusBadRequest, "content is required")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.OnChange(c.Param("id"), in.Content, nullAsAbsent(in.Settings)); err != nil {
		if errors.Is(err, content.ErrSectionNotFound) {
			h.fail(c, err)
			return
		}
		apiutil.Fail(c, http.StatusBadRequest, "invalid section data")
		return
	}
	apiutil.OK(c, http.StatusOK, s.Snapshot())
}

// nullAsAbsent treats an explicit JSON null like a missing field, so that
// settings are kept.
func nullAsAbsent(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return nil
	}
	return raw
}

// POST /admin/editor/:slug/sections {type, id?, at?}
func (h *Handler) Add(c *gin.Context) {
	var in struct {
		Type content.Type `json:"type" binding:"required"`
		ID   string       `json:"id"`
		At   *int         `json:"at"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "type is required")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	id := in.ID
	if id == "" {
		id = string(in.Type) + "-" + uuid.NewString()[:8]
	}
	at := -1
	if in.At != nil {
		at = *in.At
	}
	sec, err := s.Add(in.Type, id, at)
	if err != nil {
		h.fail(c, err)
		return
	}
	apiutil.OK(c, http.StatusCreated, gin.H{"section": sec, "editor": s.Snapshot()})
}

// DELETE /admin/editor/:slug/sections/:id
func (h *Handler) Delete(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	apiutil.OK(c, http.StatusOK, s.Snapshot())
}

// PATCH /admin/editor/:slug/sections/:id/position {to}
func (h *Handler) Move(c *gin.Context) {
	var in struct {
		To *int `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "target position is required")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Move(c.Param("id"), *in.To); err != nil {
		h.fail(c, err)
		return
	}
	apiutil.OK(c, http.StatusOK, s.Snapshot())
}

// PATCH /admin/editor/:slug/meta
func (h *Handler) Meta(c *gin.Context) {
	var in content.Meta
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid page data")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.UpdateMeta(in)
	apiutil.OK(c, http.StatusOK, s.Snapshot())
}

// POST /admin/editor/:slug/publish?leave=true
func (h *Handler) Publish(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Publish(c.Request.Context(), h.pub); err != nil {
		h.fail(c, err)
		return
	}

	owner, slug := middleware.AdminEmail(c), c.Param("slug")
	h.log.Info("editor published", zap.String("slug", slug), zap.String("admin", owner))

	if c.Query("leave") == "true" {
		if err := h.reg.Leave(owner, slug, false); err != nil {
			h.fail(c, err)
			return
		}
		apiutil.OK(c, http.StatusOK, gin.H{"published": true, "left": true})
		return
	}
	apiutil.OK(c, http.StatusOK, s.Snapshot())
}

// POST /admin/editor/:slug/leave?confirm=true
//
// Refused with 409 while the session has unsaved changes, unless the admin
// confirmed leaving without saving.
func (h *Handler) Leave(c *gin.Context) {
	confirm := c.Query("confirm") == "true"
	if err := h.reg.Leave(middleware.AdminEmail(c), c.Param("slug"), confirm); err != nil {
		h.fail(c, err)
		return
	}
	apiutil.OK(c, http.StatusOK, gin.H{"left": true})
}
