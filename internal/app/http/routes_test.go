package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adminapi "emb-site/internal/api/admin"
	authapi "emb-site/internal/api/auth"
	contactapi "emb-site/internal/api/contact"
	donationsapi "emb-site/internal/api/donations"
	editorapi "emb-site/internal/api/editor"
	galleryapi "emb-site/internal/api/gallery"
	siteapi "emb-site/internal/api/site"
	stripewebhooks "emb-site/internal/api/stripewebhook"
	"emb-site/internal/domain/access"
	"emb-site/internal/editor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type allowOne struct{ email string }

func (a allowOne) Authorize(_ context.Context, token string) (*access.Claims, error) {
	if token != "good" {
		return nil, access.ErrDenied
	}
	return &access.Claims{Email: a.email}, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := zap.NewNop()
	r := gin.New()
	RegisterRoutes(r, Deps{
		Site:      siteapi.NewHandler(nil, nil, nil, nil, nil, log),
		Contact:   contactapi.NewHandler(nil, log),
		Donations: donationsapi.NewHandler(nil, "https://site.test", log),
		Auth:      authapi.NewHandler(nil, nil, nil, "https://site.test", false, log),
		Admin:     adminapi.NewHandler(nil, nil, nil, nil, log),
		Editor:    editorapi.NewHandler(editor.NewRegistry(nil), nil, log),
		Gallery:   galleryapi.NewHandler(nil, log),
		Webhook:   stripewebhooks.NewHandler("whsec_test", nil, nil, log),
		Guard:     allowOne{email: "admin@example.com"},
		Clean:     strings.TrimSpace,
		AppURL:    "https://site.test",
		Log:       log,
	})
	return r
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	if w := get(newRouter(t), "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := newRouter(t)

	if w := get(r, "/admin/me", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: status = %d", w.Code)
	}
	if w := get(r, "/admin/me", &http.Cookie{Name: access.CookieName, Value: "bad"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad cookie: status = %d", w.Code)
	}

	w := get(r, "/admin/me", &http.Cookie{Name: access.CookieName, Value: "good"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "admin@example.com") {
		t.Fatalf("good cookie: %d %s", w.Code, w.Body.String())
	}
}

func TestDashboardEntryPoints(t *testing.T) {
	r := newRouter(t)

	w := get(r, "/dashboard/paginas", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "https://site.test/login" {
		t.Fatalf("dashboard without session: %d %q", w.Code, w.Header().Get("Location"))
	}

	session := &http.Cookie{Name: access.CookieName, Value: "anything"}
	w = get(r, "/dashboard/paginas", session)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "https://site.test/dashboard/paginas" {
		t.Fatalf("dashboard with session: %d %q", w.Code, w.Header().Get("Location"))
	}

	w = get(r, "/login", session)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "https://site.test/dashboard" {
		t.Fatalf("login with session: %d %q", w.Code, w.Header().Get("Location"))
	}
}
