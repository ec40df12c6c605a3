package oil

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/database"
	"aeroclub/core/middleware"
	"aeroclub/modules/oil/controller"
	"aeroclub/modules/oil/repository"
	"aeroclub/modules/oil/router"
	"aeroclub/modules/oil/service"
)

// Init initializes the oil module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewOilRepository(db)
	svc := service.NewOilService(repo)
	ctrl := controller.NewOilController(svc)
	rtr := router.NewOilRouter(ctrl)

	rtr.Setup(e, mw)
}
