package controller

import (
	"github.com/labstack/echo/v4"

	"aeroclub/core/constants"
	"aeroclub/core/controller"
	"aeroclub/core/errors"
	"aeroclub/core/params"
	"aeroclub/core/utils"
	"aeroclub/modules/notification/dto"
	"aeroclub/modules/notification/service"
)

type NotificationController struct {
	controller.BaseController
	NotificationService *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func (c *NotificationController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not authenticated", nil)
	}
	return claims, nil
}

// GetMyNotifications handles GET /notifications
// @Summary List my notifications
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} entity.PaginatedNotificationEntity
// @Router /private/notifications [get]
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	queryParams := params.FromEchoContext(ctx)
	result, err := c.NotificationService.GetMyNotifications(ctx.Request().Context(), claims.UserID, queryParams)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "failed to list notifications")
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// MarkAsRead handles PUT /notifications/read
// @Summary Mark notifications as read
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Param request body dto.MarkAsReadRequest true "Notification ids"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/read [put]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	if err := c.NotificationService.MarkAsRead(ctx.Request().Context(), claims.UserID, req.IDs); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "failed to mark notifications read")
	}

	return c.SuccessResponse(ctx, nil, "Notifications marked read")
}

// MarkAllAsRead handles PUT /notifications/read-all
// @Summary Mark all my notifications as read
// @Tags Notification
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/read-all [put]
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	if err := c.NotificationService.MarkAllAsRead(ctx.Request().Context(), claims.UserID); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "failed to mark notifications read")
	}

	return c.SuccessResponse(ctx, nil, "Notifications marked read")
}

// CountUnread handles GET /notifications/unread-count
// @Summary Count my unread notifications
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Router /private/notifications/unread-count [get]
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	count, err := c.NotificationService.CountUnread(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "failed to count notifications")
	}

	return c.SuccessResponse(ctx, dto.UnreadCountResponse{Count: count}, "Success")
}
