package media

import (
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/storage"
	"work-exchange-api/modules/media/controller"
	"work-exchange-api/modules/media/router"
	"work-exchange-api/modules/media/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, store storage.ObjectStore, maxUploadMB int64, mw *middleware.Middleware) {
	svc := service.NewMediaService(store, maxUploadMB)
	ctrl := controller.NewMediaController(svc)

	router.NewMediaRouter(ctrl).Register(e, mw)
}
