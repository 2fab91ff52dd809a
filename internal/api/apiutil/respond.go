// Package apiutil holds the response envelope shared by every handler:
// {"success": true, "data": ...} or {"success": false, "error": "..."}.
package apiutil

import (
	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes msg as is. Callers pass fixed, user-safe messages; raw error
// text belongs in the log.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: false, Error: msg})
}

func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg})
}
