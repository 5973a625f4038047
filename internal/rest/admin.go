package rest

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/Bota-ApexV2/n-updater/admin"
	"github.com/gin-gonic/gin"
)

// RequireAdminToken gates the admin route group behind a shared secret. This
// is the transport-level check; per-caller authorization happens inside the
// dispatcher.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-Admin-Token")
		if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}

// CommandRequest is the admin command envelope relayed by the command
// transport.
type CommandRequest struct {
	Caller  string `json:"caller"`
	Command string `json:"command"`
}

// AdminHandler exposes the moderator command dispatcher over HTTP.
type AdminHandler struct {
	dispatcher *admin.Dispatcher
}

// NewAdminHandler creates the admin command endpoint handler.
func NewAdminHandler(dispatcher *admin.Dispatcher) *AdminHandler {
	return &AdminHandler{dispatcher: dispatcher}
}

// PostCommand handles POST /admin/command.
func (h *AdminHandler) PostCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.dispatcher.Dispatch(req.Caller, req.Command)
	if errors.Is(err, admin.ErrUnauthorized) {
		c.JSON(http.StatusForbidden, gin.H{"error": "caller is not authorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
