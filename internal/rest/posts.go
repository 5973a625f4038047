package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Bota-ApexV2/n-updater/blog/application"
	"github.com/Bota-ApexV2/n-updater/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PostsHandler serves the public read endpoints over the query layer.
type PostsHandler struct {
	query *application.Query
}

// NewPostsHandler creates the read-endpoint handler set.
func NewPostsHandler(query *application.Query) *PostsHandler {
	return &PostsHandler{query: query}
}

// GetLatest handles GET / with the three newest visible posts.
func (h *PostsHandler) GetLatest(c *gin.Context) {
	latest, err := h.query.Latest()
	if errors.Is(err, domain.ErrFeatureDisabled) {
		c.String(http.StatusForbidden, "API is disabled")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to build latest posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, latest)
}

// GetPage handles GET /ran?page=N. Non-numeric or non-positive page values
// default to the first page.
func (h *PostsHandler) GetPage(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.query.Page(page)
	if errors.Is(err, domain.ErrFeatureDisabled) {
		c.JSON(http.StatusForbidden, gin.H{"error": "ran page is disabled"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to build post page")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBySlug handles GET /ran/:slug with the full post object.
func (h *PostsHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.query.BySlug(slug)
	switch {
	case errors.Is(err, domain.ErrFeatureDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "ran slug page is disabled"})
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("Failed to look up post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		c.JSON(http.StatusOK, post)
	}
}
