package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The session cookie contract shared by the API and the dashboard.
const (
	CookieName = "session"
	SessionTTL = 5 * 24 * time.Hour
)

// ErrDenied covers every failed guard step. Callers must not tell the
// reasons apart in responses.
var ErrDenied = errors.New("access denied")

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AllowList answers whether an email may administer the site.
type AllowList interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Guard issues and checks session credentials.
type Guard struct {
	secret []byte
	allow  AllowList
	now    func() time.Time
}

func NewGuard(secret string, allow AllowList) *Guard {
	return &Guard{secret: []byte(secret), allow: allow, now: time.Now}
}

// Issue signs a session credential for email.
func (g *Guard) Issue(email, name string) (string, time.Time, error) {
	if len(g.secret) == 0 {
		return "", time.Time{}, errors.New("session secret not configured")
	}
	now := g.now()
	exp := now.Add(SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: strings.ToLower(email),
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := t.SignedString(g.secret)
	return s, exp, err
}

// Verify checks signature and expiry only.
func (g *Guard) Verify(token string) (*Claims, error) {
	if token == "" || len(g.secret) == 0 {
		return nil, ErrDenied
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.Email == "" {
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	return &claims, nil
}

// Authorize runs the full guard: credential present, signature valid, email
// on the allow-list.
func (g *Guard) Authorize(ctx context.Context, token string) (*Claims, error) {
	claims, err := g.Verify(token)
	if err != nil {
		return nil, err
	}
	ok, err := g.allow.IsAdmin(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: allow-list: %v", ErrDenied, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s not allow-listed", ErrDenied, claims.Email)
	}
	return claims, nil
}
