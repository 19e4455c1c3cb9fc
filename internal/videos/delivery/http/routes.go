package http

import (
	"github.com/labstack/echo/v4"

	"github.com/streamforge/transcoder/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handlers) {
	videoGroup.POST("", h.Create())
	videoGroup.GET("", h.List())
	videoGroup.POST("/:video_id/upload", h.Upload())
	videoGroup.GET("/:video_id", h.GetByID())
	videoGroup.DELETE("/:video_id", h.Delete())
	videoGroup.POST("/:video_id/queue", h.AddToQueue())
}

func MapEncodingRoutes(encodingGroup *echo.Group, h videos.Handlers) {
	encodingGroup.GET("/recent", h.RecentEncodings())
	encodingGroup.GET("/queued", h.QueuedEncodings())
	encodingGroup.POST("/:video_id/requeue", h.Requeue())
}
