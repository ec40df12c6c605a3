package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"aeroclub/core/constants"
	"aeroclub/core/controller"
	"aeroclub/core/errors"
	"aeroclub/core/utils"
	"aeroclub/modules/oil/dto"
	"aeroclub/modules/oil/service"
)

type OilController struct {
	controller.BaseController
	OilService service.OilServiceInterface
}

func NewOilController(svc service.OilServiceInterface) *OilController {
	return &OilController{
		BaseController: controller.NewBaseController(),
		OilService:     svc,
	}
}

func (c *OilController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not authenticated", nil)
	}
	return claims, nil
}

// Create handles POST /oil
// @Summary Record an oil top-up
// @Tags Oil
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateOilLogRequest true "Top-up"
// @Success 201 {object} dto.OilLogResponse
// @Failure 400 {object} errors.AppError
// @Router /private/oil [post]
func (c *OilController) Create(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	req := new(dto.CreateOilLogRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	result, appErr := c.OilService.Create(ctx.Request().Context(), claims.UserID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Oil log added")
}

// List handles GET /oil
// @Summary Oil log history
// @Tags Oil
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.OilLogResponse
// @Router /private/oil [get]
func (c *OilController) List(ctx echo.Context) error {
	result, appErr := c.OilService.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Delete handles DELETE /oil/:id
// @Summary Delete an oil log entry
// @Tags Oil
// @Security BearerAuth
// @Param id path string true "Oil log ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Router /private/oil/{id} [delete]
func (c *OilController) Delete(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid oil log ID")
	}

	appErr := c.OilService.Delete(ctx.Request().Context(), claims.UserID, claims.Role, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Oil log deleted")
}

// Stats handles GET /oil/stats
// @Summary Oil consumption statistics
// @Tags Oil
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ConsumptionStatsResponse
// @Router /private/oil/stats [get]
func (c *OilController) Stats(ctx echo.Context) error {
	result, appErr := c.OilService.ConsumptionStats(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
