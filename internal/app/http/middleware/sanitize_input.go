package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"emb-site/internal/api/apiutil"

	"github.com/gin-gonic/gin"
)

// SanitizeJSON passes every string in a JSON body through clean, at any
// depth. It is mounted on public write routes only; admin rich text is
// cleaned by the services with their own policy.
func SanitizeJSON(clean func(string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") || c.Request.Body == nil {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			apiutil.Abort(c, http.StatusBadRequest, "invalid body")
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			apiutil.Abort(c, http.StatusBadRequest, "malformed JSON")
			return
		}

		newBody, err := json.Marshal(cleanValue(body, clean))
		if err != nil {
			apiutil.Abort(c, http.StatusBadRequest, "malformed JSON")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func cleanValue(v interface{}, clean func(string) string) interface{} {
	switch t := v.(type) {
	case string:
		return clean(t)
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = cleanValue(inner, clean)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = cleanValue(inner, clean)
		}
		return t
	default:
		return v
	}
}
