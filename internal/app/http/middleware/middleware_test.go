package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emb-site/internal/domain/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type stubAuth struct {
	claims *access.Claims
	err    error
	calls  int
}

func (s *stubAuth) Authorize(ctx context.Context, token string) (*access.Claims, error) {
	s.calls++
	return s.claims, s.err
}

func guarded(auth Authorizer) (*gin.Engine, *bool) {
	reached := false
	r := gin.New()
	r.GET("/admin/pages", RequireAdmin(auth, zap.NewNop()), func(c *gin.Context) {
		reached = true
		c.String(http.StatusOK, AdminEmail(c))
	})
	return r, &reached
}

func TestRequireAdminWithoutCookie(t *testing.T) {
	auth := &stubAuth{}
	r, reached := guarded(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/pages", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if *reached || auth.calls != 0 {
		t.Fatal("handler or authorizer ran without a credential")
	}
}

func TestRequireAdminDeniedIsGeneric(t *testing.T) {
	auth := &stubAuth{err: errors.New("access denied: intruder@example.com not allow-listed")}
	r, reached := guarded(auth)

	none := httptest.NewRecorder()
	r.ServeHTTP(none, httptest.NewRequest(http.MethodGet, "/admin/pages", nil))

	req := httptest.NewRequest(http.MethodGet, "/admin/pages", nil)
	req.AddCookie(&http.Cookie{Name: access.CookieName, Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if *reached {
		t.Fatal("handler ran after denial")
	}
	if strings.Contains(w.Body.String(), "intruder") {
		t.Fatalf("denial leaked the reason: %s", w.Body.String())
	}
	if w.Code != none.Code || w.Body.String() != none.Body.String() {
		t.Fatalf("bad credential distinguishable from missing one: %d %s vs %d %s",
			w.Code, w.Body.String(), none.Code, none.Body.String())
	}
}

func TestRequireAdminAllows(t *testing.T) {
	auth := &stubAuth{claims: &access.Claims{Email: "ana@example.com"}}
	r, reached := guarded(auth)

	req := httptest.NewRequest(http.MethodGet, "/admin/pages", nil)
	req.AddCookie(&http.Cookie{Name: access.CookieName, Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !*reached {
		t.Fatalf("status = %d reached = %v", w.Code, *reached)
	}
	if w.Body.String() != "ana@example.com" {
		t.Fatalf("email not on context: %q", w.Body.String())
	}
}

type flashSpy struct{ msgs []string }

func (f *flashSpy) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func gate(flash Flasher) *gin.Engine {
	r := gin.New()
	r.Use(PageGate("https://site.test", flash))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "page") }
	r.GET("/login", ok)
	r.GET("/dashboard", ok)
	r.GET("/dashboard/*path", ok)
	return r
}

func TestPageGate(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		cookie   bool
		code     int
		location string
	}{
		{"dashboard without session", "/dashboard", false, http.StatusFound, "https://site.test/login"},
		{"nested dashboard without session", "/dashboard/paginas/home", false, http.StatusFound, "https://site.test/login"},
		{"dashboard with session", "/dashboard", true, http.StatusOK, ""},
		{"login with session", "/login", true, http.StatusFound, "https://site.test/dashboard"},
		{"login without session", "/login", false, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flash := &flashSpy{}
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie {
				req.AddCookie(&http.Cookie{Name: access.CookieName, Value: "x"})
			}
			w := httptest.NewRecorder()
			gate(flash).ServeHTTP(w, req)

			if w.Code != tc.code {
				t.Fatalf("status = %d, want %d", w.Code, tc.code)
			}
			if got := w.Header().Get("Location"); got != tc.location {
				t.Fatalf("location = %q, want %q", got, tc.location)
			}
			if tc.location == "https://site.test/login" && len(flash.msgs) != 1 {
				t.Fatalf("expected login hint, got %v", flash.msgs)
			}
		})
	}
}

func TestSanitizeJSONCleansNestedStrings(t *testing.T) {
	var got map[string]interface{}
	r := gin.New()
	r.POST("/contact", SanitizeJSON(strings.ToUpper), func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		_ = json.Unmarshal(b, &got)
		c.Status(http.StatusNoContent)
	})

	body := `{"name":"ana","amount":5000,"tags":["a",{"x":"b"}]}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if got["name"] != "ANA" || got["amount"].(float64) != 5000 {
		t.Fatalf("unexpected body: %v", got)
	}
	tags := got["tags"].([]interface{})
	if tags[0] != "A" || tags[1].(map[string]interface{})["x"] != "B" {
		t.Fatalf("nested strings not cleaned: %v", tags)
	}
}

func TestSanitizeJSONRejectsMalformed(t *testing.T) {
	r := gin.New()
	r.POST("/contact", SanitizeJSON(strings.TrimSpace), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()), RequestLogger(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
