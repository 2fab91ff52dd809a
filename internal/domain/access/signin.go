package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AdminAccount is a password sign-in for sites that cannot use Google.
// Being allow-listed is still required.
type AdminAccount struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrAccountNotFound = errors.New("account not found")

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*AdminAccount, error)
	Upsert(ctx context.Context, a *AdminAccount) error
}

// Identity is what the identity provider vouches for.
type Identity struct {
	Email         string
	Name          string
	EmailVerified bool
}

type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, raw string) (Identity, error)
}

// SignIn turns a proof of identity into a session credential. Only
// allow-listed emails get one.
type SignIn struct {
	guard    *Guard
	allow    AllowList
	idp      IDTokenVerifier
	accounts AccountStore
}

func NewSignIn(guard *Guard, allow AllowList, idp IDTokenVerifier, accounts AccountStore) *SignIn {
	return &SignIn{guard: guard, allow: allow, idp: idp, accounts: accounts}
}

// Session is an issued credential.
type Session struct {
	Token   string
	Email   string
	Expires time.Time
}

func (s *SignIn) WithIDToken(ctx context.Context, raw string) (*Session, error) {
	if s.idp == nil || raw == "" {
		return nil, ErrDenied
	}
	id, err := s.idp.VerifyIDToken(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	if !id.EmailVerified {
		return nil, fmt.Errorf("%w: email not verified", ErrDenied)
	}
	return s.issue(ctx, id.Email, id.Name)
}

func (s *SignIn) WithPassword(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: bad password", ErrDenied)
	}
	return s.issue(ctx, acc.Email, acc.Name)
}

func (s *SignIn) issue(ctx context.Context, email, name string) (*Session, error) {
	ok, err := s.allow.IsAdmin(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: allow-list: %v", ErrDenied, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s not allow-listed", ErrDenied, email)
	}
	tok, exp, err := s.guard.Issue(email, name)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, Email: strings.ToLower(email), Expires: exp}, nil
}

// SetPassword creates or updates a password account.
func (s *SignIn) SetPassword(ctx context.Context, email, name, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.Upsert(ctx, &AdminAccount{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: string(hash),
	})
}
