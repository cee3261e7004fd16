package notification

import (
	"work-exchange-api/core/database"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/queue"
	"work-exchange-api/modules/notification/controller"
	"work-exchange-api/modules/notification/repository"
	"work-exchange-api/modules/notification/router"
	"work-exchange-api/modules/notification/service"
	"work-exchange-api/modules/notification/worker"

	"github.com/labstack/echo/v4"
)

// Init wires the HTTP side and, when a worker is given, the task handlers.
func Init(e *echo.Group, db database.IDatabase, w *queue.Worker, mw *middleware.Middleware) {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	if w != nil {
		worker.NewHandler(svc).Register(w.Mux)
	}
}
