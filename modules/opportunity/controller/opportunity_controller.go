package controller

import (
	"work-exchange-api/core/controller"
	"work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/params"
	"work-exchange-api/core/utils"
	"work-exchange-api/modules/opportunity/dto"
	"work-exchange-api/modules/opportunity/service"

	"github.com/labstack/echo/v4"
)

type OpportunityController struct {
	controller.BaseController
	OpportunityService service.OpportunityServiceInterface
}

func NewOpportunityController(service service.OpportunityServiceInterface) *OpportunityController {
	return &OpportunityController{
		BaseController:     controller.NewBaseController(),
		OpportunityService: service,
	}
}

func (controller *OpportunityController) PublicGetOpportunities(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := controller.OpportunityService.ListPublic(ctx, params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get opportunities success")
}

func (controller *OpportunityController) PublicGetOpportunityById(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid opportunity id", nil)
	}

	var actor *entity.Actor
	if a, found := middleware.ActorFromContext(c); found {
		actor = &a
	}
	result, err := controller.OpportunityService.GetByID(ctx, actor, id)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get opportunity success")
}

func (controller *OpportunityController) PrivateCreateOpportunity(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	requestData := new(dto.OpportunityRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	result, err := controller.OpportunityService.Create(ctx, actor, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.CreatedResponse(c, result, "create opportunity success")
}

func (controller *OpportunityController) PrivateUpdateOpportunity(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid opportunity id", nil)
	}

	requestData := new(dto.UpdateOpportunityRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	result, message, err := controller.OpportunityService.Update(ctx, actor, id, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, message)
}

func (controller *OpportunityController) PrivateTransitionOpportunity(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid opportunity id", nil)
	}

	requestData := new(dto.TransitionRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	result, err := controller.OpportunityService.Transition(ctx, actor, id, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, result.Message)
}

func (controller *OpportunityController) PrivateGetOpportunityActions(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid opportunity id", nil)
	}

	result, err := controller.OpportunityService.Actions(ctx, actor, id)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get opportunity actions success")
}

func (controller *OpportunityController) PrivateDeleteOpportunity(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.BadRequest(errors.ErrInvalidRequestData, "invalid opportunity id", nil)
	}

	if err := controller.OpportunityService.Delete(ctx, actor, id); err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, nil, "Listing deleted.")
}

func (controller *OpportunityController) PrivateGetMyOpportunities(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	result, err := controller.OpportunityService.ListMine(ctx, actor, params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get opportunities success")
}

func (controller *OpportunityController) AdminGetOpportunities(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := controller.OpportunityService.AdminList(ctx, params.NewQueryParams(c))
	if err != nil {
		return controller.ErrorResponse(c, err)
	}
	return controller.SuccessResponse(c, result, "get opportunities success")
}
