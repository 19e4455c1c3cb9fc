package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamforge/transcoder/internal/config"
	"github.com/streamforge/transcoder/pkg/logger"
	"github.com/streamforge/transcoder/pkg/utils"
)

type MiddlewareManager struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewMiddlewareManager(cfg *config.Config, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{cfg: cfg, logger: logger}
}

func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		req := ctx.Request()
		res := ctx.Response()
		mw.logger.Infof("RequestID: %s, Method: %s, URI: %s, Status: %v, Size: %v, Time: %s",
			utils.GetRequestID(ctx), req.Method, req.URL, res.Status, res.Size, time.Since(start))
		return err
	}
}
