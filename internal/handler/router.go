package handler

import (
	"github.com/gin-gonic/gin"

	"gamereviews/backend/internal/auth"
	"gamereviews/backend/internal/logging"
)

// NewRouter registers every route. An empty jwtSecret turns authentication off.
func NewRouter(h *Handler, jwtSecret string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.Logger != nil {
		router.Use(logging.RequestLogger(h.Logger))
	}
	router.Use(auth.OptionalAuthMiddleware(jwtSecret))

	// Health check endpoint
	router.GET("/ping", Ping)

	router.POST("/graphql", h.PostGraphQL)
	router.GET("/graphql", h.GetGraphQL)
	router.GET("/events", h.StreamEvents)

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.RequiredAuthMiddleware(jwtSecret != ""))
	{
		adminRoutes.POST("/reset", h.ResetStore)
	}

	return router
}
