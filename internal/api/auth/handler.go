package auth

import (
	"context"
	"net/http"
	"time"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/app/http/middleware"
	"emb-site/internal/domain/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SignIn interface {
	WithIDToken(ctx context.Context, raw string) (*access.Session, error)
	WithPassword(ctx context.Context, email, password string) (*access.Session, error)
}

// OAuth runs the Google authorization code flow. It is nil when Google
// sign-in is not configured.
type OAuth interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

// Flow keeps the OAuth state nonce and flash messages between redirects.
type Flow interface {
	NewState(w http.ResponseWriter, r *http.Request) (string, error)
	CheckState(w http.ResponseWriter, r *http.Request, got string) bool
	Flashes(w http.ResponseWriter, r *http.Request) []string
}

type Handler struct {
	signin SignIn
	oauth  OAuth
	flow   Flow
	appURL string
	secure bool
	log    *zap.Logger
}

func NewHandler(signin SignIn, oauth OAuth, flow Flow, appURL string, secureCookie bool, log *zap.Logger) *Handler {
	return &Handler{signin: signin, oauth: oauth, flow: flow, appURL: appURL, secure: secureCookie, log: log}
}

const denied = "access denied"

// POST /auth/session {id_token}
//
// The dashboard signs in with Google on its own and trades the ID token for
// the session cookie here.
func (h *Handler) Session(c *gin.Context) {
	var in struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "id_token is required")
		return
	}

	sess, err := h.signin.WithIDToken(c.Request.Context(), in.IDToken)
	if err != nil {
		h.log.Warn("id token sign-in refused", zap.Error(err))
		apiutil.Fail(c, http.StatusForbidden, denied)
		return
	}
	h.setSession(c, sess)
	apiutil.OK(c, http.StatusOK, gin.H{"email": sess.Email, "expires": sess.Expires})
}

// POST /auth/login {email, password}
func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	sess, err := h.signin.WithPassword(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.log.Warn("password sign-in refused", zap.String("email", in.Email), zap.Error(err))
		apiutil.Fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.setSession(c, sess)
	apiutil.OK(c, http.StatusOK, gin.H{"email": sess.Email, "expires": sess.Expires})
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(access.CookieName, "", -1, "/", "", h.secure, true)
	apiutil.OK(c, http.StatusOK, gin.H{"signed_out": true})
}

// GET /auth/hint returns the pending login page messages, once.
func (h *Handler) Hint(c *gin.Context) {
	msgs := h.flow.Flashes(c.Writer, c.Request)
	if msgs == nil {
		msgs = []string{}
	}
	apiutil.OK(c, http.StatusOK, gin.H{"messages": msgs})
}

// GET /admin/me
func (h *Handler) Me(c *gin.Context) {
	apiutil.OK(c, http.StatusOK, gin.H{
		"email": middleware.AdminEmail(c),
		"name":  c.GetString(middleware.ContextName),
	})
}

func (h *Handler) setSession(c *gin.Context, s *access.Session) {
	maxAge := int(time.Until(s.Expires).Seconds())
	if maxAge <= 0 {
		maxAge = int(access.SessionTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(access.CookieName, s.Token, maxAge, "/", "", h.secure, true)
}
