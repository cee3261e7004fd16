package router

import (
	"work-exchange-api/core/entity"
	"work-exchange-api/core/middleware"
	"work-exchange-api/modules/application/controller"

	"github.com/labstack/echo/v4"
)

type ApplicationRouter struct {
	controller *controller.ApplicationController
}

func NewApplicationRouter(controller *controller.ApplicationController) *ApplicationRouter {
	return &ApplicationRouter{controller: controller}
}

func (r *ApplicationRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	private := e.Group("/private/applications", mw.AuthMiddleware())
	private.POST("", r.controller.PrivateSubmitApplication)
	private.GET("/mine", r.controller.PrivateGetMyApplications)
	private.GET("/received", r.controller.PrivateGetReceivedApplications, mw.RequireRole(entity.RoleHost, entity.RoleAdmin))
	private.GET("/:id", r.controller.PrivateGetApplicationById)
	private.POST("/:id/review", r.controller.PrivateReviewApplication)
	private.POST("/:id/messages", r.controller.PrivateSendMessage)
	private.POST("/:id/read", r.controller.PrivateMarkMessagesRead)

	admin := e.Group("/admin/applications", mw.AuthMiddleware(), mw.RequireRole(entity.RoleAdmin))
	admin.GET("", r.controller.AdminGetApplications)
}
