package notification

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/database"
	"aeroclub/core/middleware"
	"aeroclub/modules/notification/controller"
	"aeroclub/modules/notification/repository"
	"aeroclub/modules/notification/router"
	"aeroclub/modules/notification/service"
)

// Init initializes the notification module and registers routes. The
// returned service doubles as the asynq task handler.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
