package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"aeroclub/core/constants"
	"aeroclub/core/logger"
)

// BookingCreatedPayload is the task body enqueued when a booking
// commits. The notification row is written asynchronously; a lost
// notification never fails a booking.
type BookingCreatedPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Enqueuer is the producer side handed to the schedule module.
type Enqueuer interface {
	EnqueueBookingCreated(ctx context.Context, payload BookingCreatedPayload) error
}

// Client wraps the asynq producer.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (c *Client) EnqueueBookingCreated(ctx context.Context, payload BookingCreatedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(constants.TaskBookingCreated, body)
	info, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
	if err != nil {
		logger.Error("NotificationWorker:EnqueueBookingCreated", err)
		return err
	}

	logger.Info("NotificationWorker:EnqueueBookingCreated:Queued",
		"task_id", info.ID,
		"booking_id", payload.BookingID,
	)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
