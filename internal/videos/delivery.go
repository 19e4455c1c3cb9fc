package videos

import "github.com/labstack/echo/v4"

type Handlers interface {
	Create() echo.HandlerFunc
	Upload() echo.HandlerFunc
	GetByID() echo.HandlerFunc
	List() echo.HandlerFunc
	Delete() echo.HandlerFunc
	AddToQueue() echo.HandlerFunc
	RecentEncodings() echo.HandlerFunc
	QueuedEncodings() echo.HandlerFunc
	Requeue() echo.HandlerFunc
}
