package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emb-site/internal/app/http/middleware"
	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/donations"
	"emb-site/internal/domain/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type fakePages struct {
	stored    map[string]*content.Page
	published []*content.Page
}

func (f *fakePages) List(ctx context.Context) ([]content.Page, error) {
	var out []content.Page
	for _, p := range f.stored {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePages) Load(ctx context.Context, slug string) (*content.Page, []content.Section, error) {
	p, ok := f.stored[slug]
	if !ok {
		return nil, nil, content.ErrNotFound
	}
	return p, content.ResolveSections(p.Sections, nil), nil
}

func (f *fakePages) Publish(ctx context.Context, p *content.Page) error {
	if _, ok := f.stored[p.Slug]; !ok {
		return content.ErrNotFound
	}
	f.published = append(f.published, p)
	f.stored[p.Slug] = p
	return nil
}

type fakeCatalog struct {
	classes []catalog.Class
}

func (f *fakeCatalog) Classes(ctx context.Context) ([]catalog.Class, error) { return f.classes, nil }
func (f *fakeCatalog) News(ctx context.Context) ([]catalog.NewsItem, error)  { return nil, nil }

func (f *fakeCatalog) UpsertClass(ctx context.Context, in catalog.ClassInput) (*catalog.Class, error) {
	if in.ID == "" && (in.Name == nil || *in.Name == "") {
		return nil, catalog.ErrMissingName
	}
	if in.ID == "missing" {
		return nil, catalog.ErrNotFound
	}
	return &catalog.Class{ID: "c1", Name: *in.Name, Slug: "derived"}, nil
}

func (f *fakeCatalog) UpsertNews(ctx context.Context, in catalog.NewsInput) (*catalog.NewsItem, error) {
	return &catalog.NewsItem{ID: "n1"}, nil
}

func (f *fakeCatalog) DeleteClass(ctx context.Context, id string) error {
	if id != "c1" {
		return catalog.ErrNotFound
	}
	return nil
}

func (f *fakeCatalog) DeleteNews(ctx context.Context, id string) error { return nil }

type memSettings struct {
	admins []string
	lists  map[string][]string
}

func (m *memSettings) General(ctx context.Context) (settings.General, error) {
	return settings.General{}, nil
}
func (m *memSettings) SaveGeneral(ctx context.Context, g settings.General) error { return nil }
func (m *memSettings) Admins(ctx context.Context) (settings.Admins, error) {
	return settings.Admins{Emails: m.admins}, nil
}
func (m *memSettings) SaveAdmins(ctx context.Context, emails []string) error {
	m.admins = emails
	return nil
}
func (m *memSettings) List(ctx context.Context, name string) ([]string, error) {
	if name != settings.KeyTeachers && name != settings.KeyInstruments {
		return nil, settings.ErrUnknownList
	}
	return m.lists[name], nil
}
func (m *memSettings) ReplaceList(ctx context.Context, name string, values []string) error {
	if name != settings.KeyTeachers && name != settings.KeyInstruments {
		return settings.ErrUnknownList
	}
	m.lists[name] = values
	return nil
}

type fakeDonations struct{ rows []donations.Donation }

func (f fakeDonations) List(ctx context.Context, st donations.Status) ([]donations.Donation, error) {
	return f.rows, nil
}

func setup() (*gin.Engine, *fakePages, *memSettings) {
	pages := &fakePages{stored: map[string]*content.Page{
		"clases": {Slug: "clases", Category: content.CategoryClasses},
	}}
	st := &memSettings{admins: []string{"ana@example.com"}, lists: map[string][]string{}}
	don := fakeDonations{rows: []donations.Donation{
		{Status: donations.StatusApproved, Amount: 5000},
		{Status: donations.StatusApproved, Amount: 2500},
		{Status: donations.StatusPending, Amount: 100},
		{Status: donations.StatusCancelled, Amount: 900},
	}}
	h := NewHandler(pages, &fakeCatalog{classes: []catalog.Class{{ID: "c1"}}}, st, don, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextEmail, "ana@example.com") })
	r.GET("/admin/dashboard", h.Dashboard)
	r.GET("/admin/pages/:slug", h.GetPage)
	r.PUT("/admin/pages/:slug", h.PublishPage)
	r.PUT("/admin/classes", h.UpsertClass)
	r.DELETE("/admin/classes/:id", h.DeleteClass)
	r.PUT("/admin/settings/admins", h.SaveAdmins)
	r.GET("/admin/lists/:name", h.GetList)
	r.PUT("/admin/lists/:name", h.ReplaceList)
	return r, pages, st
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardStats(t *testing.T) {
	r, _, _ := setup()
	w := call(r, http.MethodGet, "/admin/dashboard", "")
	var env struct {
		Data Stats `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Stats{Pages: 1, Classes: 1, DonationsPending: 1, DonationsApproved: 2, ApprovedTotal: 7500}
	if env.Data != want {
		t.Fatalf("stats = %+v, want %+v", env.Data, want)
	}
}

func TestPublishPageKeepsCategoryAndWholeAggregate(t *testing.T) {
	r, pages, _ := setup()
	body := `{"header_title":"Clases","sections":["legacy-1",{"id":"hero-0","type":"hero","content":{"slides":[]}}]}`
	w := call(r, http.MethodPut, "/admin/pages/clases", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if len(pages.published) != 1 {
		t.Fatalf("published %d times", len(pages.published))
	}
	p := pages.published[0]
	if p.Slug != "clases" || p.Category != content.CategoryClasses || len(p.Sections) != 2 {
		t.Fatalf("unexpected aggregate: %+v", p)
	}
	if p.Sections[0].Ref != "legacy-1" || p.Sections[1].Inline == nil {
		t.Fatalf("entries not decoded: %+v", p.Sections)
	}
}

func TestPublishUnknownPage(t *testing.T) {
	r, _, _ := setup()
	w := call(r, http.MethodPut, "/admin/pages/nueva", `{"category":"general","sections":[]}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUpsertClassErrors(t *testing.T) {
	r, _, _ := setup()
	if w := call(r, http.MethodPut, "/admin/classes", `{"name":""}`); w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status = %d", w.Code)
	}
	if w := call(r, http.MethodPut, "/admin/classes", `{"id":"missing","name":"x"}`); w.Code != http.StatusNotFound {
		t.Fatalf("missing id: status = %d", w.Code)
	}
	if w := call(r, http.MethodPut, "/admin/classes", `{"name":"Piano"}`); w.Code != http.StatusOK {
		t.Fatalf("insert: status = %d", w.Code)
	}
	if w := call(r, http.MethodDelete, "/admin/classes/zzz", ""); w.Code != http.StatusNotFound {
		t.Fatalf("delete missing: status = %d", w.Code)
	}
}

func TestSaveAdminsRefusesSelfRemoval(t *testing.T) {
	r, _, st := setup()
	w := call(r, http.MethodPut, "/admin/settings/admins", `{"emails":["beto@example.com"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if len(st.admins) != 1 || st.admins[0] != "ana@example.com" {
		t.Fatalf("allow-list changed: %v", st.admins)
	}

	w = call(r, http.MethodPut, "/admin/settings/admins", `{"emails":["Ana@Example.com ","beto@example.com"]}`)
	if w.Code != http.StatusOK || len(st.admins) != 2 {
		t.Fatalf("status = %d admins = %v", w.Code, st.admins)
	}
}

func TestReplaceListKeepsDuplicates(t *testing.T) {
	r, _, st := setup()
	w := call(r, http.MethodPut, "/admin/lists/teachers", `{"list":["Ana","Ana","Beto"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := st.lists["teachers"]; len(got) != 3 {
		t.Fatalf("list = %v", got)
	}
	if w := call(r, http.MethodPut, "/admin/lists/colors", `{"list":[]}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown list: status = %d", w.Code)
	}
}
