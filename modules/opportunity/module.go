package opportunity

import (
	"work-exchange-api/core/cache"
	"work-exchange-api/core/database"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/queue"
	"work-exchange-api/modules/opportunity/controller"
	"work-exchange-api/modules/opportunity/repository"
	"work-exchange-api/modules/opportunity/router"
	"work-exchange-api/modules/opportunity/service"

	"github.com/labstack/echo/v4"
)

// Init wires the module and returns its repository, which the application
// module reads listings and bumps counters through.
func Init(e *echo.Group, db database.IDatabase, cache cache.Cache, queue queue.Enqueuer, mw *middleware.Middleware) *repository.OpportunityRepository {
	repo := repository.NewOpportunityRepository(db)
	svc := service.NewOpportunityService(repo, cache, queue)
	ctrl := controller.NewOpportunityController(svc)

	router.NewOpportunityRouter(ctrl).Register(e, mw)

	return repo
}
