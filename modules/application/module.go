package application

import (
	"work-exchange-api/core/cache"
	"work-exchange-api/core/database"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/queue"
	"work-exchange-api/modules/application/controller"
	"work-exchange-api/modules/application/repository"
	"work-exchange-api/modules/application/router"
	"work-exchange-api/modules/application/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, opportunities service.OpportunityStore, cache cache.Cache, queue queue.Enqueuer, mw *middleware.Middleware) {
	repo := repository.NewApplicationRepository(db)
	svc := service.NewApplicationService(repo, opportunities, cache, queue)
	ctrl := controller.NewApplicationController(svc)

	router.NewApplicationRouter(ctrl).Register(e, mw)
}
