package galleryapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"emb-site/internal/domain/gallery"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type memStore struct{ imgs map[string]gallery.Image }

func (m *memStore) List(context.Context) ([]gallery.Image, error) {
	out := make([]gallery.Image, 0, len(m.imgs))
	for _, img := range m.imgs {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memStore) Create(_ context.Context, img *gallery.Image) error {
	m.imgs[img.ID] = *img
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.imgs[id]; !ok {
		return gallery.ErrNotFound
	}
	delete(m.imgs, id)
	return nil
}

func (m *memStore) UpdateCaption(_ context.Context, id, caption, alt string) error {
	img, ok := m.imgs[id]
	if !ok {
		return gallery.ErrNotFound
	}
	img.Caption, img.Alt = caption, alt
	m.imgs[id] = img
	return nil
}

func (m *memStore) SetOrders(_ context.Context, orders map[string]int) error {
	for id, o := range orders {
		img := m.imgs[id]
		img.Order = o
		m.imgs[id] = img
	}
	return nil
}

func newRouter() *gin.Engine {
	svc := gallery.NewService(&memStore{imgs: map[string]gallery.Image{}}, zap.NewNop())
	h := NewHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/admin/gallery", h.Add)
	r.PUT("/admin/gallery/order", h.Reorder)
	r.PATCH("/admin/gallery/:id", h.Caption)
	r.DELETE("/admin/gallery/:id", h.Delete)
	return r
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func images(t *testing.T, w *httptest.ResponseRecorder) []gallery.Image {
	t.Helper()
	var env struct {
		Data []gallery.Image `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Data
}

func add(t *testing.T, r *gin.Engine, url string) gallery.Image {
	t.Helper()
	w := call(r, http.MethodPost, "/admin/gallery", `{"url":"`+url+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add: %d %s", w.Code, w.Body.String())
	}
	var env struct {
		Data gallery.Image `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return env.Data
}

func TestAddDeleteReorder(t *testing.T) {
	r := newRouter()
	a := add(t, r, "https://cdn.example/a.jpg")
	b := add(t, r, "https://cdn.example/b.jpg")
	c := add(t, r, "https://cdn.example/c.jpg")
	if a.Order != 0 || b.Order != 1 || c.Order != 2 {
		t.Fatalf("orders: %d %d %d", a.Order, b.Order, c.Order)
	}

	after := images(t, call(r, http.MethodDelete, "/admin/gallery/"+a.ID, ""))
	if len(after) != 2 || after[0].ID != b.ID || after[0].Order != 0 || after[1].Order != 1 {
		t.Fatalf("after delete: %+v", after)
	}

	w := call(r, http.MethodPut, "/admin/gallery/order", `{"ids":["`+c.ID+`","`+b.ID+`"]}`)
	got := images(t, w)
	if w.Code != http.StatusOK || got[0].ID != c.ID || got[1].ID != b.ID {
		t.Fatalf("reorder: %d %+v", w.Code, got)
	}
}

func TestGalleryValidation(t *testing.T) {
	r := newRouter()
	a := add(t, r, "https://cdn.example/a.jpg")

	if w := call(r, http.MethodPost, "/admin/gallery", `{"url":"ftp://cdn.example/a.jpg"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad scheme: %d", w.Code)
	}
	if w := call(r, http.MethodPut, "/admin/gallery/order", `{"ids":["`+a.ID+`","`+a.ID+`"]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate ids: %d", w.Code)
	}
	if w := call(r, http.MethodDelete, "/admin/gallery/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing image: %d", w.Code)
	}
	if w := call(r, http.MethodPatch, "/admin/gallery/"+a.ID, `{"caption":" Concierto "}`); w.Code != http.StatusOK {
		t.Fatalf("caption: %d", w.Code)
	} else if got := images(t, w); got[0].Caption != "Concierto" {
		t.Fatalf("caption not trimmed: %q", got[0].Caption)
	}
}
