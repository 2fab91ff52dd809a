package middleware

import (
	"context"
	"net/http"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextEmail = "email"
	ContextName  = "name"
)

// Authorizer verifies a session credential and checks the allow-list.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*access.Claims, error)
}

// RequireAdmin runs before every admin read or write. Every failure gets the
// same status and body; the reason goes to the log only.
func RequireAdmin(auth Authorizer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(access.CookieName)
		if err != nil || token == "" {
			log.Debug("admin access denied: no session", zap.String("path", c.Request.URL.Path))
			apiutil.Abort(c, http.StatusUnauthorized, "access denied")
			return
		}

		claims, err := auth.Authorize(c.Request.Context(), token)
		if err != nil {
			log.Warn("admin access denied",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			apiutil.Abort(c, http.StatusUnauthorized, "access denied")
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextName, claims.Name)
		c.Next()
	}
}

// AdminEmail returns the email RequireAdmin stored on the context.
func AdminEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}
