// Package adminapi serves the guarded admin reads and writes that are not
// tied to an editor session: whole-page publish, collections, settings and
// the dashboard summary.
package adminapi

import (
	"context"
	"errors"
	"net/http"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/donations"
	"emb-site/internal/domain/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pages interface {
	List(ctx context.Context) ([]content.Page, error)
	Load(ctx context.Context, slug string) (*content.Page, []content.Section, error)
	Publish(ctx context.Context, p *content.Page) error
}

type Catalog interface {
	Classes(ctx context.Context) ([]catalog.Class, error)
	News(ctx context.Context) ([]catalog.NewsItem, error)
	UpsertClass(ctx context.Context, in catalog.ClassInput) (*catalog.Class, error)
	UpsertNews(ctx context.Context, in catalog.NewsInput) (*catalog.NewsItem, error)
	DeleteClass(ctx context.Context, id string) error
	DeleteNews(ctx context.Context, id string) error
}

type Settings interface {
	General(ctx context.Context) (settings.General, error)
	SaveGeneral(ctx context.Context, g settings.General) error
	Admins(ctx context.Context) (settings.Admins, error)
	SaveAdmins(ctx context.Context, emails []string) error
	List(ctx context.Context, name string) ([]string, error)
	ReplaceList(ctx context.Context, name string, values []string) error
}

type DonationLister interface {
	List(ctx context.Context, status donations.Status) ([]donations.Donation, error)
}

type Handler struct {
	pages     Pages
	catalog   Catalog
	settings  Settings
	donations DonationLister
	log       *zap.Logger
}

func NewHandler(pages Pages, cat Catalog, st Settings, don DonationLister, log *zap.Logger) *Handler {
	return &Handler{pages: pages, catalog: cat, settings: st, donations: don, log: log}
}

// fail maps domain errors onto statuses. Unexpected errors are logged and
// answered with msg.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, content.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound):
		apiutil.Fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, catalog.ErrMissingName):
		apiutil.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, settings.ErrUnknownList):
		apiutil.Fail(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
		apiutil.Fail(c, http.StatusInternalServerError, msg)
	}
}

type Stats struct {
	Pages             int   `json:"pages"`
	Classes           int   `json:"classes"`
	News              int   `json:"news"`
	DonationsPending  int   `json:"donations_pending"`
	DonationsApproved int   `json:"donations_approved"`
	ApprovedTotal     int64 `json:"approved_total"`
}

// GET /admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	var st Stats

	pages, err := h.pages.List(ctx)
	if err != nil {
		h.fail(c, err, "could not load dashboard")
		return
	}
	st.Pages = len(pages)

	classes, err := h.catalog.Classes(ctx)
	if err != nil {
		h.fail(c, err, "could not load dashboard")
		return
	}
	st.Classes = len(classes)

	news, err := h.catalog.News(ctx)
	if err != nil {
		h.fail(c, err, "could not load dashboard")
		return
	}
	st.News = len(news)

	all, err := h.donations.List(ctx, "")
	if err != nil {
		h.fail(c, err, "could not load dashboard")
		return
	}
	for _, d := range all {
		switch d.Status {
		case donations.StatusPending:
			st.DonationsPending++
		case donations.StatusApproved:
			st.DonationsApproved++
			st.ApprovedTotal += d.Amount
		}
	}

	apiutil.OK(c, http.StatusOK, st)
}
