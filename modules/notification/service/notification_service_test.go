package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"aeroclub/core/params"
	"aeroclub/modules/notification/entity"
	"aeroclub/modules/notification/worker"
)

type fakeNotificationRepo struct {
	items []entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	created := *n
	created.ID = uuid.New()
	f.items = append(f.items, created)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	var items []entity.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			items = append(items, n)
		}
	}
	return &entity.PaginatedNotificationEntity{
		Items:      items,
		TotalItems: len(items),
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	for i := range f.items {
		if f.items[i].UserID != userID {
			continue
		}
		for _, id := range ids {
			if f.items[i].ID.String() == id {
				f.items[i].IsRead = true
			}
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for i := range f.items {
		if f.items[i].UserID == userID {
			f.items[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func TestCreateBookingCreated(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	userID := uuid.New()
	bookingID := uuid.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	err := svc.CreateBookingCreated(ctx, worker.BookingCreatedPayload{
		BookingID: bookingID,
		UserID:    userID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, repo.items, 1)

	notif := repo.items[0]
	require.Equal(t, userID, notif.UserID)
	require.Equal(t, entity.TypeBookingCreated, notif.Type)
	require.False(t, notif.IsRead)
	require.Equal(t, bookingID.String(), notif.Data["booking_id"])
}

func TestUnreadLifecycle(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	userID := uuid.New()
	other := uuid.New()
	start := time.Now()

	for _, uid := range []uuid.UUID{userID, userID, other} {
		require.NoError(t, svc.CreateBookingCreated(ctx, worker.BookingCreatedPayload{
			BookingID: uuid.New(),
			UserID:    uid,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}))
	}

	count, err := svc.CountUnread(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	page, err := svc.GetMyNotifications(ctx, userID, params.QueryParams{PageNumber: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	require.NoError(t, svc.MarkAsRead(ctx, userID, []string{page.Items[0].ID.String()}))
	count, err = svc.CountUnread(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead(ctx, userID))
	count, err = svc.CountUnread(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	// The other member's notification is untouched.
	count, err = svc.CountUnread(ctx, other)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
