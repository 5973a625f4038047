package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandlePanics converts a panicking handler into a generic 500 response so
// internals are never exposed to clients.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		if err, ok := recovered.(error); ok {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Handler panicked")
		} else {
			log.Error().Any("panic", recovered).Str("path", c.Request.URL.Path).Msg("Handler panicked")
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
