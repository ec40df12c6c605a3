package auth

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/cache"
	"aeroclub/core/database"
	"aeroclub/core/middleware"
	"aeroclub/modules/auth/controller"
	"aeroclub/modules/auth/repository"
	"aeroclub/modules/auth/router"
	"aeroclub/modules/auth/service"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.CacheInterface) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
