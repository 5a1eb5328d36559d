package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	api.Use(handler.RequireUser)
	{
		api.POST("/analyze", handler.AnalyzeProperty)

		api.GET("/properties", handler.ListProperties)
		api.GET("/properties/:id", handler.GetProperty)
		api.DELETE("/properties/:id", handler.DeleteProperty)
		api.PUT("/properties/:id/favorite", handler.SetFavorite)
		api.PUT("/properties/:id/status", handler.SetStatus)
		api.GET("/properties/:id/export", handler.ExportProperty)

		api.GET("/properties/:id/images", handler.ListImages)
		api.POST("/properties/:id/images", handler.UploadImages)
		api.DELETE("/properties/:id/images", handler.DeleteImages)

		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.UpdateSettings)
	}
}
