package router

import (
	"work-exchange-api/core/middleware"
	"work-exchange-api/modules/media/controller"

	"github.com/labstack/echo/v4"
)

type MediaRouter struct {
	controller *controller.MediaController
}

func NewMediaRouter(controller *controller.MediaController) *MediaRouter {
	return &MediaRouter{controller: controller}
}

func (r *MediaRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	private := e.Group("/private/media", mw.AuthMiddleware())
	private.POST("/photos", r.controller.PrivateUploadPhoto)
}
