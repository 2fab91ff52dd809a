// Package google wraps Google sign-in: the OAuth redirect flow and ID token
// verification against Google's published keys.
package google

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"emb-site/internal/domain/access"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

const issuer = "https://accounts.google.com"

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Verifier struct {
	cfg Config

	once     sync.Once
	verifier *oidc.IDTokenVerifier
	initErr  error
}

func New(cfg Config) *Verifier {
	return &Verifier{cfg: cfg}
}

func (v *Verifier) oauth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     v.cfg.ClientID,
		ClientSecret: v.cfg.ClientSecret,
		RedirectURL:  v.cfg.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     googleoauth.Endpoint,
	}
}

// The provider document is fetched on first use, not at startup.
func (v *Verifier) idVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.once.Do(func() {
		provider, err := oidc.NewProvider(ctx, issuer)
		if err != nil {
			v.initErr = fmt.Errorf("init google oidc provider: %w", err)
			return
		}
		v.verifier = provider.Verifier(&oidc.Config{ClientID: v.cfg.ClientID})
	})
	return v.verifier, v.initErr
}

type idClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// VerifyIDToken checks signature, issuer, audience and expiry.
func (v *Verifier) VerifyIDToken(ctx context.Context, raw string) (access.Identity, error) {
	if v.cfg.ClientID == "" {
		return access.Identity{}, errors.New("google sign-in not configured")
	}
	ver, err := v.idVerifier(ctx)
	if err != nil {
		return access.Identity{}, err
	}
	tok, err := ver.Verify(ctx, raw)
	if err != nil {
		return access.Identity{}, fmt.Errorf("invalid id_token: %w", err)
	}
	var c idClaims
	if err := tok.Claims(&c); err != nil {
		return access.Identity{}, fmt.Errorf("decode id_token claims: %w", err)
	}
	if c.Email == "" || c.Sub == "" {
		return access.Identity{}, errors.New("id_token missing required claims")
	}
	return access.Identity{Email: c.Email, Name: c.Name, EmailVerified: c.EmailVerified}, nil
}

func (v *Verifier) AuthCodeURL(state string) string {
	return v.oauth().AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for the raw ID token.
func (v *Verifier) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := v.oauth().Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", errors.New("missing id_token")
	}
	return raw, nil
}
