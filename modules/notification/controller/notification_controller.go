package controller

import (
	"strconv"

	"work-exchange-api/core/controller"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/params"
	"work-exchange-api/modules/notification/dto"
	"work-exchange-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(service service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: service,
	}
}

// PrivateGetMyNotifications lists the caller's notifications, newest first.
// ?unread=true restricts the list to unread ones.
func (controller *NotificationController) PrivateGetMyNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread"))

	result, err := controller.NotificationService.GetMyNotifications(ctx, actor, unreadOnly, params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get notifications success")
}

func (controller *NotificationController) PrivateMarkAsRead(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	requestData := new(dto.MarkAsReadRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if err := controller.NotificationService.MarkAsRead(ctx, actor, requestData); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, nil, "marked as read")
}

func (controller *NotificationController) PrivateMarkAllAsRead(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	if err := controller.NotificationService.MarkAllAsRead(ctx, actor); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, nil, "marked all as read")
}

func (controller *NotificationController) PrivateCountUnread(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	result, err := controller.NotificationService.CountUnread(ctx, actor)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get unread count success")
}
