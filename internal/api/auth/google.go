package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if h.oauth == nil {
		c.Redirect(http.StatusFound, h.appURL+"/login?error=google")
		return
	}
	state, err := h.flow.NewState(c.Writer, c.Request)
	if err != nil {
		h.log.Error("oauth state", zap.Error(err))
		c.Redirect(http.StatusFound, h.appURL+"/login?error=google")
		return
	}
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// GET /auth/google/callback
//
// Every failure lands on the login page with the same error marker.
func (h *Handler) GoogleCallback(c *gin.Context) {
	fail := func(msg string, err error) {
		h.log.Warn(msg, zap.Error(err))
		c.Redirect(http.StatusFound, h.appURL+"/login?error=acceso")
	}

	if h.oauth == nil {
		fail("google sign-in not configured", nil)
		return
	}
	code := c.Query("code")
	if code == "" || !h.flow.CheckState(c.Writer, c.Request, c.Query("state")) {
		fail("invalid oauth callback", nil)
		return
	}

	raw, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		fail("oauth exchange failed", err)
		return
	}
	sess, err := h.signin.WithIDToken(c.Request.Context(), raw)
	if err != nil {
		fail("google sign-in refused", err)
		return
	}

	h.setSession(c, sess)
	c.Redirect(http.StatusFound, h.appURL+"/dashboard")
}
