package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamforge/transcoder/internal/media"
	"github.com/streamforge/transcoder/internal/middleware"
	videoHttp "github.com/streamforge/transcoder/internal/videos/delivery/http"
	videoRepository "github.com/streamforge/transcoder/internal/videos/repository"
	videoUsecase "github.com/streamforge/transcoder/internal/videos/usecase"
	"github.com/streamforge/transcoder/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	vRepo := videoRepository.NewVideoRepo(s.db)
	vAWSRepo := videoRepository.NewAwsRepository(s.s3Client, s.cfg.S3.Bucket)
	vRedisRepo := videoRepository.NewVideoRedisRepo(s.redisClient)

	inspector := media.NewInspector(s.cfg.Media.FFprobePath)
	capturer := media.NewCapturer(s.cfg.Media.FFmpegPath)

	videoUC := videoUsecase.NewVideoUseCase(s.cfg, vRepo, vRedisRepo, vAWSRepo, inspector, capturer, s.logger)
	videoHandlers := videoHttp.NewVideoHandlers(videoUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/videos")
	encodingGroup := v1.Group("/encodings")

	videoHttp.MapVideoRoutes(videoGroup, videoHandlers)
	videoHttp.MapEncodingRoutes(encodingGroup, videoHandlers)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
