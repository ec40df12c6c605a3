package router

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/middleware"
	"aeroclub/modules/schedule/controller"
)

// ScheduleRouter handles booking and maintenance routes.
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

// Setup registers schedule routes.
func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	bookingRoutes := privateRoutes.Group("/bookings", mw.AuthMiddleware())
	bookingRoutes.GET("", r.ScheduleController.GetBookings)
	bookingRoutes.POST("", r.ScheduleController.CreateBooking)
	bookingRoutes.POST("/from-selection", r.ScheduleController.CreateBookingFromSelection)
	bookingRoutes.DELETE("/:id", r.ScheduleController.CancelBooking)

	maintenanceRoutes := privateRoutes.Group("/maintenance", mw.AuthMiddleware())
	maintenanceRoutes.GET("", r.ScheduleController.GetMaintenance)
	maintenanceRoutes.POST("", r.ScheduleController.CreateMaintenance, mw.RequireOwner())
	maintenanceRoutes.DELETE("/:id", r.ScheduleController.CancelMaintenance, mw.RequireOwner())

	scheduleRoutes := privateRoutes.Group("/schedule", mw.AuthMiddleware())
	scheduleRoutes.GET("/week", r.ScheduleController.GetWeekSchedule)
}
