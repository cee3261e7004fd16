package controller

import (
	"work-exchange-api/core/controller"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/middleware"
	"work-exchange-api/modules/media/service"

	"github.com/labstack/echo/v4"
)

type MediaController struct {
	controller.BaseController
	MediaService service.MediaServiceInterface
}

func NewMediaController(service service.MediaServiceInterface) *MediaController {
	return &MediaController{
		BaseController: controller.NewBaseController(),
		MediaService:   service,
	}
}

func (controller *MediaController) PrivateUploadPhoto(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "unauthorized", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "file is required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "cannot read file", nil)
	}
	defer file.Close()

	result, appErr := controller.MediaService.UploadPhoto(ctx, actor, file, fileHeader.Size)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.CreatedResponse(c, result, "upload photo success")
}
