package validator

import (
	"net/mail"

	"aeroclub/core/controller"
	"aeroclub/modules/auth/dto"
)

func ValidateRegisterRequest(req *dto.RegisterRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{Success: true}

	if req.Name == "" {
		result.Errors = append(result.Errors, controller.NewValidationError("name", "name is required"))
	}
	if req.Email == "" {
		result.Errors = append(result.Errors, controller.NewValidationError("email", "email is required"))
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		result.Errors = append(result.Errors, controller.NewValidationError("email", "email is not valid"))
	}
	if len(req.Password) < 8 {
		result.Errors = append(result.Errors, controller.NewValidationError("password", "password must be at least 8 characters"))
	}

	result.Success = !result.HasError()
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{Success: true}

	if req.Email == "" {
		result.Errors = append(result.Errors, controller.NewValidationError("email", "email is required"))
	}
	if req.Password == "" {
		result.Errors = append(result.Errors, controller.NewValidationError("password", "password is required"))
	}

	result.Success = !result.HasError()
	return result
}

func ValidateUpdateProfileRequest(req *dto.UpdateProfileRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{Success: true}

	if req.Name == "" && req.Password == "" {
		result.Errors = append(result.Errors, controller.NewValidationError("name", "nothing to update"))
	}
	if req.Password != "" && len(req.Password) < 8 {
		result.Errors = append(result.Errors, controller.NewValidationError("password", "password must be at least 8 characters"))
	}

	result.Success = !result.HasError()
	return result
}
