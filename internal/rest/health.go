package rest

import (
	"net/http"
	"time"

	"github.com/Bota-ApexV2/n-updater/blog/application"
	"github.com/gin-gonic/gin"
)

// NewHealthHandler reports liveness plus cache freshness for monitoring.
func NewHealthHandler(store *application.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		lastUpdated := ""
		if t := store.LastUpdated(); !t.IsZero() {
			lastUpdated = t.Format(time.RFC3339)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"posts":       store.Len(),
			"lastUpdated": lastUpdated,
		})
	}
}
