package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	coreEntity "aeroclub/core/entity"
	"aeroclub/core/params"
	"aeroclub/modules/notification/entity"
	"aeroclub/modules/notification/repository"
	"aeroclub/modules/notification/worker"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

// CreateBookingCreated writes the in-app notification for a committed
// booking. Called from the asynq handler, not from request paths.
func (s *NotificationService) CreateBookingCreated(ctx context.Context, payload worker.BookingCreatedPayload) error {
	notif := &entity.Notification{
		UserID:  payload.UserID,
		Title:   "Booking confirmed",
		Message: fmt.Sprintf("Aircraft reserved from %s to %s", payload.StartTime.Format("Mon Jan 2 15:04"), payload.EndTime.Format("Mon Jan 2 15:04")),
		Type:    entity.TypeBookingCreated,
		Data: entity.JSONB{
			"booking_id": payload.BookingID.String(),
			"start_time": payload.StartTime,
			"end_time":   payload.EndTime,
		},
		IsRead: false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.repo.Create(ctx, notif)
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
