package rest

import (
	"github.com/Bota-ApexV2/n-updater/admin"
	"github.com/Bota-ApexV2/n-updater/blog/application"
	"github.com/gin-gonic/gin"
)

// NewApi registers every route on the given engine.
func NewApi(router *gin.Engine, query *application.Query, store *application.Store, dispatcher *admin.Dispatcher, adminToken string) {
	posts := NewPostsHandler(query)
	router.GET("/", posts.GetLatest)
	router.GET("/ran", posts.GetPage)
	router.GET("/ran/:slug", posts.GetBySlug)

	router.GET("/healthz", NewHealthHandler(store))

	adminGroup := router.Group("/admin")
	adminGroup.Use(RequireAdminToken(adminToken))
	{
		adminGroup.POST("/command", NewAdminHandler(dispatcher).PostCommand)
	}
}
