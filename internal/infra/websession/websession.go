// Package websession keeps short-lived browser state that is not the admin
// credential: the OAuth state nonce and one-shot flash messages.
package websession

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "emb_flow"
	stateKey   = "oauth_state"
	maxAge     = 15 * 60
)

type Store struct {
	store *sessions.CookieStore
}

func New(secret []byte, secure bool) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}
}

// NewState stores a fresh nonce and returns it for the authorization URL.
func (s *Store) NewState(w http.ResponseWriter, r *http.Request) (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	sess, _ := s.store.Get(r, cookieName)
	sess.Values[stateKey] = state
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return state, nil
}

// CheckState consumes the stored nonce. It reports false when none is
// stored or it differs from got.
func (s *Store) CheckState(w http.ResponseWriter, r *http.Request, got string) bool {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return false
	}
	want, _ := sess.Values[stateKey].(string)
	delete(sess.Values, stateKey)
	_ = sess.Save(r, w)

	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	sess, _ := s.store.Get(r, cookieName)
	sess.AddFlash(msg)
	return sess.Save(r, w)
}

// Flashes returns and clears pending messages.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			out = append(out, m)
		}
	}
	return out
}
