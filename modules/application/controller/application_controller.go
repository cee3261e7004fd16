package controller

import (
	"work-exchange-api/core/controller"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/params"
	"work-exchange-api/core/utils"
	"work-exchange-api/modules/application/dto"
	"work-exchange-api/modules/application/service"

	"github.com/labstack/echo/v4"
)

type ApplicationController struct {
	controller.BaseController
	ApplicationService service.ApplicationServiceInterface
}

func NewApplicationController(service service.ApplicationServiceInterface) *ApplicationController {
	return &ApplicationController{
		BaseController:     controller.NewBaseController(),
		ApplicationService: service,
	}
}

func (controller *ApplicationController) PrivateSubmitApplication(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	requestData := new(dto.SubmitApplicationRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	result, message, err := controller.ApplicationService.Submit(ctx, actor, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.CreatedResponse(c, result, message)
}

func (controller *ApplicationController) PrivateGetApplicationById(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid application id", nil)
	}

	result, err := controller.ApplicationService.GetByID(ctx, actor, id)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get application success")
}

func (controller *ApplicationController) PrivateReviewApplication(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid application id", nil)
	}

	requestData := new(dto.ReviewApplicationRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	result, err := controller.ApplicationService.Review(ctx, actor, id, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, result.Message)
}

func (controller *ApplicationController) PrivateSendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid application id", nil)
	}

	requestData := new(dto.SendMessageRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	result, err := controller.ApplicationService.SendMessage(ctx, actor, id, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.CreatedResponse(c, result, "message sent")
}

func (controller *ApplicationController) PrivateMarkMessagesRead(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid application id", nil)
	}

	if err := controller.ApplicationService.MarkRead(ctx, actor, id); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, nil, "messages marked as read")
}

func (controller *ApplicationController) PrivateGetMyApplications(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	result, err := controller.ApplicationService.ListMine(ctx, actor, params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get applications success")
}

func (controller *ApplicationController) PrivateGetReceivedApplications(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	result, err := controller.ApplicationService.ListReceived(ctx, actor, c.QueryParam("opportunity_id"), params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get applications success")
}

func (controller *ApplicationController) AdminGetApplications(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := controller.ApplicationService.AdminList(ctx, params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get applications success")
}
