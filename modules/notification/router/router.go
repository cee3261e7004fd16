package router

import (
	"work-exchange-api/core/middleware"
	"work-exchange-api/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{controller: controller}
}

func (r *NotificationRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/private/notifications", mw.AuthMiddleware())
	group.GET("", r.controller.PrivateGetMyNotifications)
	group.GET("/unread-count", r.controller.PrivateCountUnread)
	group.PUT("/mark-read", r.controller.PrivateMarkAsRead)
	group.PUT("/mark-all-read", r.controller.PrivateMarkAllAsRead)
}
