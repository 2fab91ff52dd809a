package websession

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func carry(from *httptest.ResponseRecorder, to *http.Request) {
	for _, c := range from.Result().Cookies() {
		to.AddCookie(c)
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := New([]byte("0123456789abcdef0123456789abcdef"), false)

	w := httptest.NewRecorder()
	state, err := s.NewState(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	if err != nil || state == "" {
		t.Fatalf("new state: %q %v", state, err)
	}

	r := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	carry(w, r)
	if s.CheckState(httptest.NewRecorder(), r, "other") {
		t.Fatal("mismatched state accepted")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	carry(w, r2)
	if !s.CheckState(httptest.NewRecorder(), r2, state) {
		t.Fatal("matching state rejected")
	}
}

func TestCheckStateWithoutCookie(t *testing.T) {
	s := New([]byte("0123456789abcdef0123456789abcdef"), false)
	r := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	if s.CheckState(httptest.NewRecorder(), r, "") {
		t.Fatal("empty state accepted")
	}
}

func TestFlashesAreOneShot(t *testing.T) {
	s := New([]byte("0123456789abcdef0123456789abcdef"), false)

	w := httptest.NewRecorder()
	if err := s.AddFlash(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil), "Iniciá sesión"); err != nil {
		t.Fatalf("add flash: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/auth/hint", nil)
	carry(w, r)
	w2 := httptest.NewRecorder()
	got := s.Flashes(w2, r)
	if len(got) != 1 || got[0] != "Iniciá sesión" {
		t.Fatalf("flashes = %v", got)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/auth/hint", nil)
	carry(w2, r2)
	if again := s.Flashes(httptest.NewRecorder(), r2); len(again) != 0 {
		t.Fatalf("flash shown twice: %v", again)
	}
}
