package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"aeroclub/core/cache"
	"aeroclub/core/constants"
	"aeroclub/core/controller"
	"aeroclub/core/errors"
	"aeroclub/core/logger"
	"aeroclub/core/utils"
)

// Middleware bundles the request middlewares handed to every module.
type Middleware struct {
	cache cache.CacheInterface
}

func New(c cache.CacheInterface) *Middleware {
	return &Middleware{cache: c}
}

// RequestID tags every request with a short nanoid.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: utils.GenerateID,
	})
}

// AuthMiddleware validates the bearer token, rejects revoked tokens and
// puts the principal claims on the context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing or malformed authorization header")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:Auth:IsTokenBlacklisted", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to verify token")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireOwner gates owner-only routes. Runs after AuthMiddleware.
func (m *Middleware) RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok || claims == nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "user not authenticated")
			}
			if claims.Role != constants.RoleOwner {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "owner access required")
			}
			return next(c)
		}
	}
}
