package router

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/middleware"
	"aeroclub/modules/auth/controller"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicRoutes.POST("/auth/register", r.AuthController.Register)
	publicRoutes.POST("/auth/login", r.AuthController.Login)

	privateRoutes := v1.Group("/private")

	authRoutes := privateRoutes.Group("/auth", mw.AuthMiddleware())
	authRoutes.POST("/logout", r.AuthController.Logout)
	authRoutes.GET("/me", r.AuthController.GetMe)
	authRoutes.PUT("/profile", r.AuthController.UpdateProfile)

	userRoutes := privateRoutes.Group("/users", mw.AuthMiddleware(), mw.RequireOwner())
	userRoutes.GET("", r.AuthController.ListUsers)
	userRoutes.DELETE("/:id", r.AuthController.DeleteUser)
}
