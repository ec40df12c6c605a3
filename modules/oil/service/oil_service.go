package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"aeroclub/core/constants"
	"aeroclub/core/errors"
	"aeroclub/core/logger"
	"aeroclub/modules/oil/dto"
	"aeroclub/modules/oil/entity"
	"aeroclub/modules/oil/repository"
)

// OilService handles the oil consumption log.
type OilService struct {
	repo repository.OilRepositoryInterface
}

type OilServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateOilLogRequest) (*dto.OilLogResponse, *errors.AppError)
	List(ctx context.Context) ([]dto.OilLogResponse, *errors.AppError)
	Delete(ctx context.Context, requesterID uuid.UUID, requesterRole string, id uuid.UUID) *errors.AppError
	ConsumptionStats(ctx context.Context) (*dto.ConsumptionStatsResponse, *errors.AppError)
}

func NewOilService(repo repository.OilRepositoryInterface) OilServiceInterface {
	return &OilService{repo: repo}
}

func (s *OilService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateOilLogRequest) (*dto.OilLogResponse, *errors.AppError) {
	if req.Quarts <= 0 || req.Quarts > constants.OilQuartsMax {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid quarts amount", nil)
	}
	if req.HobbsTime <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "hobbs time is required", nil)
	}

	log := &entity.OilLog{
		UserID:    userID,
		Date:      time.Now(),
		Quarts:    req.Quarts,
		HobbsTime: req.HobbsTime,
	}
	if req.Notes != "" {
		log.Notes = &req.Notes
	}

	created, err := s.repo.Create(ctx, log)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add oil log", err)
	}

	logger.Info("OilService:Create:Added", "oil_log_id", created.ID, "quarts", created.Quarts)
	return dto.ToOilLogResponse(created), nil
}

func (s *OilService) List(ctx context.Context) ([]dto.OilLogResponse, *errors.AppError) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list oil logs", err)
	}

	result := make([]dto.OilLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *dto.ToOilLogWithUserResponse(&logs[i]))
	}
	return result, nil
}

func (s *OilService) Delete(ctx context.Context, requesterID uuid.UUID, requesterRole string, id uuid.UUID) *errors.AppError {
	log, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to look up oil log", err)
	}
	if log == nil {
		return errors.NewAppError(errors.ErrNotFound, "oil log not found", nil)
	}

	if log.UserID != requesterID && requesterRole != constants.RoleOwner {
		return errors.NewAppError(errors.ErrForbidden, "you can only delete your own oil logs", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete oil log", err)
	}
	return nil
}

// ConsumptionStats derives quarts-per-hour from the span between the
// earliest and latest hobbs readings. The list comes back date-
// descending, so the last element is the earliest entry.
func (s *OilService) ConsumptionStats(ctx context.Context) (*dto.ConsumptionStatsResponse, *errors.AppError) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load oil logs", err)
	}

	stats := &dto.ConsumptionStatsResponse{Entries: len(logs)}
	if len(logs) == 0 {
		return stats, nil
	}

	var total float64
	for i := range logs {
		total += logs[i].Quarts
	}
	stats.TotalQuarts = total

	latest := logs[0].HobbsTime
	earliest := logs[len(logs)-1].HobbsTime
	stats.HobbsDelta = latest - earliest

	if stats.HobbsDelta > 0 && len(logs) > 1 {
		// The earliest top-up precedes the measured span.
		stats.QuartsPerHour = (total - logs[len(logs)-1].Quarts) / stats.HobbsDelta
	}

	return stats, nil
}
