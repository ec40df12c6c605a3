package worker

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"aeroclub/core/constants"
	"aeroclub/core/logger"
)

// BookingCreatedHandler is implemented by the notification service.
type BookingCreatedHandler interface {
	CreateBookingCreated(ctx context.Context, payload BookingCreatedPayload) error
}

// Server runs the in-process asynq consumer.
type Server struct {
	srv     *asynq.Server
	handler BookingCreatedHandler
}

func NewServer(redisAddr string, redisPassword string, redisDB int, concurrency int, handler BookingCreatedHandler) *Server {
	return &Server{
		srv: asynq.NewServer(
			asynq.RedisClientOpt{
				Addr:     redisAddr,
				Password: redisPassword,
				DB:       redisDB,
			},
			asynq.Config{
				Concurrency: concurrency,
			},
		),
		handler: handler,
	}
}

// Start runs the consumer loop in a goroutine.
func (s *Server) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskBookingCreated, s.handleBookingCreated)

	if err := s.srv.Start(mux); err != nil {
		logger.Error("NotificationWorker:Start", err)
		return err
	}

	logger.Info("Notification worker started")
	return nil
}

func (s *Server) Shutdown() {
	s.srv.Shutdown()
}

func (s *Server) handleBookingCreated(ctx context.Context, task *asynq.Task) error {
	var payload BookingCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("NotificationWorker:HandleBookingCreated:Unmarshal", err)
		// A malformed payload will never succeed; drop it.
		return nil
	}

	if err := s.handler.CreateBookingCreated(ctx, payload); err != nil {
		logger.Error("NotificationWorker:HandleBookingCreated:Create", err)
		return err
	}

	logger.Info("NotificationWorker:HandleBookingCreated:Done", "booking_id", payload.BookingID)
	return nil
}
