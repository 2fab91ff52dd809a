// Package siteapi serves the public, read-only side of the site.
package siteapi

import (
	"context"
	"errors"
	"net/http"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/gallery"
	"emb-site/internal/domain/settings"
	"emb-site/internal/infra/rendercache"
	"emb-site/internal/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PageLoader interface {
	Load(ctx context.Context, slug string) (*content.Page, []content.Section, error)
}

type Catalog interface {
	Classes(ctx context.Context) ([]catalog.Class, error)
	News(ctx context.Context) ([]catalog.NewsItem, error)
	ClassBySlug(ctx context.Context, slug string) (*catalog.Class, error)
	NewsBySlug(ctx context.Context, slug string) (*catalog.NewsItem, error)
}

type GeneralReader interface {
	General(ctx context.Context) (settings.General, error)
}

type GalleryLister interface {
	List(ctx context.Context) ([]gallery.Image, error)
}

type Cache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
}

type Handler struct {
	pages    PageLoader
	catalog  Catalog
	settings GeneralReader
	gallery  GalleryLister
	cache    Cache
	log      *zap.Logger
}

func NewHandler(pages PageLoader, cat Catalog, general GeneralReader, gal GalleryLister, cache Cache, log *zap.Logger) *Handler {
	return &Handler{pages: pages, catalog: cat, settings: general, gallery: gal, cache: cache, log: log}
}

// GET /pages/:slug?form=
func (h *Handler) GetPage(c *gin.Context) {
	slug := c.Param("slug")
	override := c.Query("form")
	variant, _ := render.NormalizeForm(override)
	key := rendercache.Key(slug, variant)

	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			apiutil.OK(c, http.StatusOK, v)
			return
		}
	}

	ctx := c.Request.Context()
	p, sections, err := h.pages.Load(ctx, slug)
	if errors.Is(err, content.ErrNotFound) {
		apiutil.Fail(c, http.StatusNotFound, "page not found")
		return
	}
	if err != nil {
		h.log.Error("load page", zap.String("slug", slug), zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load page")
		return
	}

	in := render.Input{PageSlug: p.Slug, PageCategory: p.Category, FormOverride: override}
	if needs(sections, content.TypeClasses) {
		if in.Classes, err = h.catalog.Classes(ctx); err != nil {
			h.log.Error("load classes", zap.Error(err))
			apiutil.Fail(c, http.StatusInternalServerError, "could not load page")
			return
		}
	}
	if needs(sections, content.TypeNews) {
		if in.News, err = h.catalog.News(ctx); err != nil {
			h.log.Error("load news", zap.Error(err))
			apiutil.Fail(c, http.StatusInternalServerError, "could not load page")
			return
		}
	}

	out := PageDTO{
		Slug:              p.Slug,
		Category:          string(p.Category),
		HeaderTitle:       p.HeaderTitle,
		HeaderDescription: p.HeaderDescription,
		HeaderImageURL:    p.HeaderImageURL,
		MetaTitle:         p.MetaTitle,
		MetaDescription:   p.MetaDescription,
		LastUpdated:       p.LastUpdated,
		Sections:          render.Page(sections, in),
	}
	if h.cache != nil {
		h.cache.Set(key, out)
	}
	apiutil.OK(c, http.StatusOK, out)
}

func needs(sections []content.Section, t content.Type) bool {
	for _, s := range sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

// GET /settings/general
func (h *Handler) GetGeneral(c *gin.Context) {
	g, err := h.settings.General(c.Request.Context())
	if err != nil {
		h.log.Error("load general settings", zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load settings")
		return
	}
	apiutil.OK(c, http.StatusOK, toGeneralDTO(g))
}

// GET /gallery
func (h *Handler) ListGallery(c *gin.Context) {
	imgs, err := h.gallery.List(c.Request.Context())
	if err != nil {
		h.log.Error("list gallery", zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load gallery")
		return
	}
	if imgs == nil {
		imgs = []gallery.Image{}
	}
	apiutil.OK(c, http.StatusOK, imgs)
}

// GET /classes
func (h *Handler) ListClasses(c *gin.Context) {
	list, err := h.catalog.Classes(c.Request.Context())
	if err != nil {
		h.log.Error("list classes", zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load classes")
		return
	}
	if list == nil {
		list = []catalog.Class{}
	}
	apiutil.OK(c, http.StatusOK, list)
}

// GET /classes/:slug
func (h *Handler) GetClass(c *gin.Context) {
	item, err := h.catalog.ClassBySlug(c.Request.Context(), c.Param("slug"))
	h.item(c, item, err, "class")
}

// GET /news
func (h *Handler) ListNews(c *gin.Context) {
	list, err := h.catalog.News(c.Request.Context())
	if err != nil {
		h.log.Error("list news", zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load news")
		return
	}
	if list == nil {
		list = []catalog.NewsItem{}
	}
	apiutil.OK(c, http.StatusOK, list)
}

// GET /news/:slug
func (h *Handler) GetNews(c *gin.Context) {
	item, err := h.catalog.NewsBySlug(c.Request.Context(), c.Param("slug"))
	h.item(c, item, err, "news")
}

func (h *Handler) item(c *gin.Context, item any, err error, kind string) {
	if errors.Is(err, catalog.ErrNotFound) {
		apiutil.Fail(c, http.StatusNotFound, kind+" not found")
		return
	}
	if err != nil {
		h.log.Error("get "+kind, zap.String("slug", c.Param("slug")), zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, "could not load "+kind)
		return
	}
	apiutil.OK(c, http.StatusOK, item)
}
