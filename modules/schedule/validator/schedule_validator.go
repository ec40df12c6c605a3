package validator

import (
	"aeroclub/core/controller"
	"aeroclub/modules/schedule/dto"
)

// ValidateCreateBookingRequest checks field presence and shape only.
// Range and overlap semantics belong to the service.
func ValidateCreateBookingRequest(req *dto.CreateBookingRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{Success: true}

	if req.StartTime.IsZero() {
		result.Errors = append(result.Errors, controller.NewValidationError("start_time", "start_time is required"))
	}
	if req.EndTime.IsZero() {
		result.Errors = append(result.Errors, controller.NewValidationError("end_time", "end_time is required"))
	}
	if len(req.Destination) > 200 {
		result.Errors = append(result.Errors, controller.NewValidationError("destination", "destination must be at most 200 characters"))
	}
	if len(req.Notes) > 500 {
		result.Errors = append(result.Errors, controller.NewValidationError("notes", "notes must be at most 500 characters"))
	}

	result.Success = !result.HasError()
	return result
}

func ValidateCreateBookingFromSelectionRequest(req *dto.CreateBookingFromSelectionRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{Success: true}

	if req.WeekStart.IsZero() {
		result.Errors = append(result.Errors, controller.NewValidationError("week_start", "week_start is required"))
	}
	if len(req.Cells) == 0 {
		result.Errors = append(result.Errors, controller.NewValidationError("cells", "at least one selection cell is required"))
	}
	if len(req.Destination) > 200 {
		result.Errors = append(result.Errors, controller.NewValidationError("destination", "destination must be at most 200 characters"))
	}
	if len(req.Notes) > 500 {
		result.Errors = append(result.Errors, controller.NewValidationError("notes", "notes must be at most 500 characters"))
	}

	result.Success = !result.HasError()
	return result
}

func ValidateCreateMaintenanceRequest(req *dto.CreateMaintenanceRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{Success: true}

	if req.StartTime.IsZero() {
		result.Errors = append(result.Errors, controller.NewValidationError("start_time", "start_time is required"))
	}
	if req.EndTime.IsZero() {
		result.Errors = append(result.Errors, controller.NewValidationError("end_time", "end_time is required"))
	}
	if req.Description == "" {
		result.Errors = append(result.Errors, controller.NewValidationError("description", "description is required"))
	}

	result.Success = !result.HasError()
	return result
}
