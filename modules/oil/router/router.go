package router

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/middleware"
	"aeroclub/modules/oil/controller"
)

type OilRouter struct {
	OilController *controller.OilController
}

func NewOilRouter(oilController *controller.OilController) *OilRouter {
	return &OilRouter{
		OilController: oilController,
	}
}

func (r *OilRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	oilRoutes := privateRoutes.Group("/oil", mw.AuthMiddleware())
	oilRoutes.GET("", r.OilController.List)
	oilRoutes.POST("", r.OilController.Create)
	oilRoutes.GET("/stats", r.OilController.Stats)
	oilRoutes.DELETE("/:id", r.OilController.Delete)
}
