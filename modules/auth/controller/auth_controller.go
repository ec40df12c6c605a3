package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"aeroclub/core/constants"
	"aeroclub/core/controller"
	"aeroclub/core/errors"
	"aeroclub/core/params"
	"aeroclub/core/utils"
	"aeroclub/modules/auth/dto"
	"aeroclub/modules/auth/service"
	"aeroclub/modules/auth/validator"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (c *AuthController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not authenticated", nil)
	}
	return claims, nil
}

// Register handles POST /auth/register
// @Summary Register a club member
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "New member"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/auth/register [post]
func (c *AuthController) Register(ctx echo.Context) error {
	requestData := new(dto.RegisterRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	registerResponse, err := c.AuthService.Register(ctx.Request().Context(), requestData)
	if err != nil {
		if err.Code == errors.ErrAlreadyExists {
			return c.Conflict(err.Code, err.Message, nil)
		}
		return c.InternalServerError(err.Code, err.Message)
	}

	return c.CreatedResponse(ctx, registerResponse, "Register success")
}

// Login handles POST /auth/login
// @Summary Log in and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	requestData := new(dto.LoginRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, err := c.AuthService.Login(ctx.Request().Context(), requestData)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	return c.SuccessResponse(ctx, loginResponse, "Login success")
}

// Logout handles POST /auth/logout
// @Summary Revoke the current token
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	token, err := utils.GetTokenFromHeader(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if errLogout := c.AuthService.Logout(ctx.Request().Context(), token); errLogout != nil {
		return c.ErrorResponse(ctx, errLogout)
	}

	return c.SuccessResponse(ctx, nil, "Logout success")
}

// GetMe handles GET /auth/me
// @Summary Current member profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /private/auth/me [get]
func (c *AuthController) GetMe(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AuthService.GetMe(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateProfile handles PUT /auth/profile
// @Summary Update name or password
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.UserResponse
// @Router /private/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	requestData := new(dto.UpdateProfileRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateUpdateProfileRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	result, appErr := c.AuthService.UpdateProfile(ctx.Request().Context(), claims.UserID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile updated")
}

// DeleteUser handles DELETE /users/:id (owner only)
// @Summary Remove a club member
// @Description Deletes the member along with their bookings and oil logs; self-deletion is refused
// @Tags Auth
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/users/{id} [delete]
func (c *AuthController) DeleteUser(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid user ID")
	}

	appErr := c.AuthService.DeleteUser(ctx.Request().Context(), claims.UserID, claims.Role, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "User deleted")
}

// ListUsers handles GET /users (owner only)
// @Summary List club members
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedUsersResponse
// @Failure 403 {object} errors.AppError
// @Router /private/users [get]
func (c *AuthController) ListUsers(ctx echo.Context) error {
	queryParams := params.FromEchoContext(ctx)

	result, appErr := c.AuthService.ListUsers(ctx.Request().Context(), queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
