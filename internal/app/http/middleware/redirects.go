package middleware

import (
	"net/http"
	"strings"

	"emb-site/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// Flasher leaves a one-shot message for the next page.
type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, msg string) error
}

const LoginHint = "Iniciá sesión para acceder al panel."

// PageGate handles the dashboard and login entry points. Only the presence
// of the session cookie is checked here; the API behind the dashboard runs
// the full RequireAdmin check.
func PageGate(appURL string, flash Flasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		_, err := c.Cookie(access.CookieName)
		hasSession := err == nil

		switch {
		case isDashboard(path) && !hasSession:
			if flash != nil {
				_ = flash.AddFlash(c.Writer, c.Request, LoginHint)
			}
			c.Redirect(http.StatusFound, appURL+"/login")
			c.Abort()
			return
		case path == "/login" && hasSession:
			c.Redirect(http.StatusFound, appURL+"/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func isDashboard(path string) bool {
	return path == "/dashboard" || strings.HasPrefix(path, "/dashboard/")
}
