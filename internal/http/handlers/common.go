package handlers

import (
	"net/http"

	intconfig "safarpay/internal/config"
	"safarpay/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var env intconfig.Env

// Init wires the loaded environment into the handler package. Called once
// from the router before any route is mounted.
func Init(e intconfig.Env) {
	env = e
}

// JWTSecret exposes the signing key for the auth middleware.
func JWTSecret() []byte {
	return []byte(env.JWTSecret)
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}
