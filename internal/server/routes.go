package server

import (
	"github.com/labstack/echo/v4"

	"github.com/relgraph/relgraph/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Relationship graph routes
	apiRoutes.GET("/relationships", routes.GetRelationshipsHandler)
	apiRoutes.GET("/entities/:name/relationships", routes.GetEntityRelationshipsHandler)
}
