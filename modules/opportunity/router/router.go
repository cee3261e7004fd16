package router

import (
	"work-exchange-api/core/entity"
	"work-exchange-api/core/middleware"
	"work-exchange-api/modules/opportunity/controller"

	"github.com/labstack/echo/v4"
)

type OpportunityRouter struct {
	controller *controller.OpportunityController
}

func NewOpportunityRouter(controller *controller.OpportunityController) *OpportunityRouter {
	return &OpportunityRouter{controller: controller}
}

func (r *OpportunityRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	public := e.Group("/opportunities", mw.OptionalAuth())
	public.GET("", r.controller.PublicGetOpportunities)
	public.GET("/:id", r.controller.PublicGetOpportunityById)

	private := e.Group("/private/opportunities", mw.AuthMiddleware())
	private.POST("", r.controller.PrivateCreateOpportunity, mw.RequireRole(entity.RoleHost, entity.RoleAdmin))
	private.GET("/mine", r.controller.PrivateGetMyOpportunities)
	private.PUT("/:id", r.controller.PrivateUpdateOpportunity)
	private.DELETE("/:id", r.controller.PrivateDeleteOpportunity)
	private.POST("/:id/transitions", r.controller.PrivateTransitionOpportunity)
	private.GET("/:id/actions", r.controller.PrivateGetOpportunityActions)

	admin := e.Group("/admin/opportunities", mw.AuthMiddleware(), mw.RequireRole(entity.RoleAdmin))
	admin.GET("", r.controller.AdminGetOpportunities)
}
