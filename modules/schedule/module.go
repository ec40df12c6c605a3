package schedule

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/database"
	"aeroclub/core/middleware"
	"aeroclub/modules/notification/worker"
	"aeroclub/modules/schedule/controller"
	"aeroclub/modules/schedule/repository"
	"aeroclub/modules/schedule/router"
	"aeroclub/modules/schedule/service"
)

// Init initializes the schedule module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, enqueuer worker.Enqueuer) {
	repo := repository.NewScheduleRepository(db)
	svc := service.NewScheduleService(repo, enqueuer)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}
