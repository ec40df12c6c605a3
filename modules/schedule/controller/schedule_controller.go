package controller

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"aeroclub/core/constants"
	"aeroclub/core/controller"
	"aeroclub/core/errors"
	"aeroclub/core/utils"
	"aeroclub/modules/schedule/dto"
	"aeroclub/modules/schedule/service"
	"aeroclub/modules/schedule/validator"
)

// ScheduleController handles booking and maintenance HTTP requests.
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

func (c *ScheduleController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token data", nil)
	}

	return claims, nil
}

// CreateBooking handles POST /bookings
// @Summary Book the aircraft
// @Description Commit an exclusive reservation for a continuous time window
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Proposed interval"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/bookings [post]
func (c *ScheduleController) CreateBooking(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	req := new(dto.CreateBookingRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	validationResult := validator.ValidateCreateBookingRequest(req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid booking request", validationResult)
	}

	result, appErr := c.ScheduleService.CreateBooking(ctx.Request().Context(), claims.UserID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Booking created successfully")
}

// CreateBookingFromSelection handles POST /bookings/from-selection
// @Summary Book the aircraft from a calendar selection
// @Description Reduce a drag-selected run of day/hour cells to one continuous interval and commit it
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingFromSelectionRequest true "Selected cells"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/bookings/from-selection [post]
func (c *ScheduleController) CreateBookingFromSelection(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	req := new(dto.CreateBookingFromSelectionRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	validationResult := validator.ValidateCreateBookingFromSelectionRequest(req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid selection request", validationResult)
	}

	result, appErr := c.ScheduleService.CreateBookingFromSelection(ctx.Request().Context(), claims.UserID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Booking created successfully")
}

// GetBookings handles GET /bookings
// @Summary List all bookings
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BookingResponse
// @Router /private/bookings [get]
func (c *ScheduleController) GetBookings(ctx echo.Context) error {
	result, appErr := c.ScheduleService.ListBookings(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CancelBooking handles DELETE /bookings/:id
// @Summary Cancel a booking
// @Description Owners of the booking and the club owner may cancel
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/bookings/{id} [delete]
func (c *ScheduleController) CancelBooking(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid booking ID")
	}

	appErr := c.ScheduleService.CancelBooking(ctx.Request().Context(), claims.UserID, claims.Role, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Booking cancelled")
}

// CreateMaintenance handles POST /maintenance
// @Summary Schedule a maintenance blackout window
// @Description Owner only; refused if it would overlap any existing booking
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMaintenanceRequest true "Blackout window"
// @Success 201 {object} dto.MaintenanceResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/maintenance [post]
func (c *ScheduleController) CreateMaintenance(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	req := new(dto.CreateMaintenanceRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	validationResult := validator.ValidateCreateMaintenanceRequest(req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid maintenance request", validationResult)
	}

	result, appErr := c.ScheduleService.CreateMaintenance(ctx.Request().Context(), claims.Role, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Maintenance window scheduled")
}

// GetMaintenance handles GET /maintenance
// @Summary List maintenance windows
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.MaintenanceResponse
// @Router /private/maintenance [get]
func (c *ScheduleController) GetMaintenance(ctx echo.Context) error {
	result, appErr := c.ScheduleService.ListMaintenance(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CancelMaintenance handles DELETE /maintenance/:id
// @Summary Remove a maintenance window
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Maintenance ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Router /private/maintenance/{id} [delete]
func (c *ScheduleController) CancelMaintenance(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	blockID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid maintenance ID")
	}

	appErr := c.ScheduleService.CancelMaintenance(ctx.Request().Context(), claims.Role, blockID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Maintenance window removed")
}

// GetWeekSchedule handles GET /schedule/week?start=RFC3339
// @Summary Calendar week view
// @Description Bookings and maintenance touching the seven days from start
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param start query string true "Week start (RFC3339)"
// @Success 200 {object} dto.WeekScheduleResponse
// @Router /private/schedule/week [get]
func (c *ScheduleController) GetWeekSchedule(ctx echo.Context) error {
	startParam := ctx.QueryParam("start")
	weekStart, err := time.Parse(time.RFC3339, startParam)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid or missing week start")
	}

	result, appErr := c.ScheduleService.GetWeekSchedule(ctx.Request().Context(), weekStart)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
