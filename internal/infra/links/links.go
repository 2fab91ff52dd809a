// Package links signs the ids embedded in emailed or redirect links.
package links

import (
	"errors"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	cancelName = "donation-cancel"
	maxAge     = 30 * 24 * time.Hour
)

var ErrInvalid = errors.New("invalid link token")

// Signer produces tamper-proof, expiring tokens carrying a single id.
type Signer struct {
	codec *securecookie.SecureCookie
}

// New requires a hash key of at least 32 bytes.
func New(hashKey []byte) (*Signer, error) {
	if len(hashKey) < 32 {
		return nil, errors.New("link signing key must be at least 32 bytes")
	}
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(maxAge.Seconds()))
	return &Signer{codec: sc}, nil
}

func (s *Signer) Sign(id string) (string, error) {
	return s.codec.Encode(cancelName, id)
}

func (s *Signer) Verify(token string) (string, error) {
	var id string
	if err := s.codec.Decode(cancelName, token, &id); err != nil || id == "" {
		return "", ErrInvalid
	}
	return id, nil
}
