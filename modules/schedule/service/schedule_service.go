package service

import (
	"context"
	"database/sql"
	goerrors "errors"
	"time"

	"github.com/google/uuid"

	"aeroclub/core/constants"
	"aeroclub/core/errors"
	"aeroclub/core/logger"
	"aeroclub/modules/notification/worker"
	"aeroclub/modules/schedule/dto"
	"aeroclub/modules/schedule/entity"
	"aeroclub/modules/schedule/repository"
)

// errConflict aborts the exclusive section after a conflict has been
// recorded; it rolls the transaction back without being surfaced.
var errConflict = goerrors.New("schedule conflict")

// ScheduleService is the conflict resolver: every state transition
// that adds a booking or maintenance block passes through it, so the
// non-overlap invariant is enforced in exactly one place.
type ScheduleService struct {
	store    repository.ScheduleRepositoryInterface
	enqueuer worker.Enqueuer
}

// ScheduleServiceInterface defines the service contract.
type ScheduleServiceInterface interface {
	CreateBooking(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError)
	CreateBookingFromSelection(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBookingFromSelectionRequest) (*dto.BookingResponse, *errors.AppError)
	CancelBooking(ctx context.Context, requesterID uuid.UUID, requesterRole string, bookingID uuid.UUID) *errors.AppError
	CreateMaintenance(ctx context.Context, requesterRole string, req *dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, *errors.AppError)
	CancelMaintenance(ctx context.Context, requesterRole string, blockID uuid.UUID) *errors.AppError
	ListBookings(ctx context.Context) ([]dto.BookingResponse, *errors.AppError)
	ListMaintenance(ctx context.Context) ([]dto.MaintenanceResponse, *errors.AppError)
	GetWeekSchedule(ctx context.Context, weekStart time.Time) (*dto.WeekScheduleResponse, *errors.AppError)
}

// NewScheduleService creates the resolver. The enqueuer may be nil
// in contexts without a task backend; bookings still commit.
func NewScheduleService(store repository.ScheduleRepositoryInterface, enqueuer worker.Enqueuer) ScheduleServiceInterface {
	return &ScheduleService{
		store:    store,
		enqueuer: enqueuer,
	}
}

// CreateBooking validates and commits a proposed booking interval.
// The range check runs before any store query; the overlap checks and
// the insert run inside the store's exclusive section, so concurrent
// proposals for intersecting ranges serialize and at most one wins.
func (s *ScheduleService) CreateBooking(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, *errors.AppError) {
	proposed := entity.Interval{Start: req.StartTime, End: req.EndTime}
	if !proposed.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidRange, "end time must be after start time", nil)
	}

	booking := &entity.Booking{
		UserID:    ownerID,
		StartTime: proposed.Start,
		EndTime:   proposed.End,
	}
	if req.Destination != "" {
		booking.Destination = &req.Destination
	}
	if req.Notes != "" {
		booking.Notes = &req.Notes
	}

	var created *entity.Booking
	var conflict *errors.AppError

	err := s.store.WithExclusiveSchedule(ctx, func(tx repository.ScheduleTx) error {
		overlapping, err := tx.OverlappingBookings(ctx, proposed)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			conflict = errors.NewAppError(errors.ErrSlotTaken, "time slot is already booked", nil)
			return errConflict
		}

		blocks, err := tx.OverlappingMaintenance(ctx, proposed)
		if err != nil {
			return err
		}
		if len(blocks) > 0 {
			conflict = errors.NewAppError(errors.ErrMaintenanceConflict, "aircraft is scheduled for maintenance", nil)
			return errConflict
		}

		created, err = tx.InsertBooking(ctx, booking)
		return err
	})

	if conflict != nil {
		return nil, conflict
	}
	if err != nil {
		logger.Error("ScheduleService:CreateBooking:Store", err)
		return nil, errors.NewAppError(errors.ErrStorage, "failed to commit booking", err)
	}

	logger.Info("ScheduleService:CreateBooking:Committed",
		"booking_id", created.ID,
		"user_id", ownerID,
		"start", created.StartTime,
		"end", created.EndTime,
	)

	s.notifyBookingCreated(ctx, created)

	return dto.ToBookingResponse(created), nil
}

// CreateBookingFromSelection reduces a calendar drag-selection to its
// canonical interval, then commits it through the same path.
func (s *ScheduleService) CreateBookingFromSelection(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBookingFromSelectionRequest) (*dto.BookingResponse, *errors.AppError) {
	iv, appErr := ReduceSelection(req.WeekStart, req.Cells)
	if appErr != nil {
		return nil, appErr
	}

	return s.CreateBooking(ctx, ownerID, &dto.CreateBookingRequest{
		StartTime:   iv.Start,
		EndTime:     iv.End,
		Destination: req.Destination,
		Notes:       req.Notes,
	})
}

// CancelBooking deletes a booking for its owner, or for the club
// owner on anyone's behalf.
func (s *ScheduleService) CancelBooking(ctx context.Context, requesterID uuid.UUID, requesterRole string, bookingID uuid.UUID) *errors.AppError {
	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to look up booking", err)
	}
	if booking == nil {
		return errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}

	if booking.UserID != requesterID && requesterRole != constants.RoleOwner {
		return errors.NewAppError(errors.ErrForbidden, "you can only cancel your own bookings", nil)
	}

	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		if err == sql.ErrNoRows {
			// Deleted between lookup and delete; cancellation already
			// took effect.
			return nil
		}
		return errors.NewAppError(errors.ErrStorage, "failed to cancel booking", err)
	}

	logger.Info("ScheduleService:CancelBooking:Deleted",
		"booking_id", bookingID,
		"requester_id", requesterID,
	)
	return nil
}

// CreateMaintenance validates and commits a blackout window. Existing
// bookings take precedence: maintenance is scheduled around them,
// never over them. Overlap with existing maintenance is also refused
// to keep the invariant symmetric.
func (s *ScheduleService) CreateMaintenance(ctx context.Context, requesterRole string, req *dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, *errors.AppError) {
	if requesterRole != constants.RoleOwner {
		return nil, errors.NewAppError(errors.ErrForbidden, "owner access required", nil)
	}

	proposed := entity.Interval{Start: req.StartTime, End: req.EndTime}
	if !proposed.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidRange, "end time must be after start time", nil)
	}

	block := &entity.MaintenanceBlock{
		StartTime:   proposed.Start,
		EndTime:     proposed.End,
		Description: req.Description,
	}

	var created *entity.MaintenanceBlock
	var conflict *errors.AppError

	err := s.store.WithExclusiveSchedule(ctx, func(tx repository.ScheduleTx) error {
		overlapping, err := tx.OverlappingBookings(ctx, proposed)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			conflict = errors.NewAppError(errors.ErrMaintenanceConflict, "maintenance conflicts with existing bookings", nil)
			return errConflict
		}

		blocks, err := tx.OverlappingMaintenance(ctx, proposed)
		if err != nil {
			return err
		}
		if len(blocks) > 0 {
			conflict = errors.NewAppError(errors.ErrMaintenanceConflict, "maintenance window already scheduled for this period", nil)
			return errConflict
		}

		created, err = tx.InsertMaintenance(ctx, block)
		return err
	})

	if conflict != nil {
		return nil, conflict
	}
	if err != nil {
		logger.Error("ScheduleService:CreateMaintenance:Store", err)
		return nil, errors.NewAppError(errors.ErrStorage, "failed to commit maintenance window", err)
	}

	logger.Info("ScheduleService:CreateMaintenance:Committed",
		"maintenance_id", created.ID,
		"start", created.StartTime,
		"end", created.EndTime,
	)

	return dto.ToMaintenanceResponse(created), nil
}

func (s *ScheduleService) CancelMaintenance(ctx context.Context, requesterRole string, blockID uuid.UUID) *errors.AppError {
	if requesterRole != constants.RoleOwner {
		return errors.NewAppError(errors.ErrForbidden, "owner access required", nil)
	}

	if err := s.store.DeleteMaintenance(ctx, blockID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewAppError(errors.ErrNotFound, "maintenance window not found", nil)
		}
		return errors.NewAppError(errors.ErrStorage, "failed to cancel maintenance window", err)
	}

	return nil
}

func (s *ScheduleService) ListBookings(ctx context.Context) ([]dto.BookingResponse, *errors.AppError) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to list bookings", err)
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, *dto.ToBookingWithUserResponse(&bookings[i]))
	}
	return result, nil
}

func (s *ScheduleService) ListMaintenance(ctx context.Context) ([]dto.MaintenanceResponse, *errors.AppError) {
	blocks, err := s.store.ListMaintenance(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to list maintenance windows", err)
	}

	result := make([]dto.MaintenanceResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *dto.ToMaintenanceResponse(&blocks[i]))
	}
	return result, nil
}

// GetWeekSchedule returns everything touching [weekStart, weekStart+7d)
// for the calendar view.
func (s *ScheduleService) GetWeekSchedule(ctx context.Context, weekStart time.Time) (*dto.WeekScheduleResponse, *errors.AppError) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	bookings, err := s.store.ListBookingsInRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to load week bookings", err)
	}

	blocks, err := s.store.ListMaintenanceInRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to load week maintenance", err)
	}

	resp := &dto.WeekScheduleResponse{
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		Bookings:    make([]dto.BookingResponse, 0, len(bookings)),
		Maintenance: make([]dto.MaintenanceResponse, 0, len(blocks)),
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *dto.ToBookingWithUserResponse(&bookings[i]))
	}
	for i := range blocks {
		resp.Maintenance = append(resp.Maintenance, *dto.ToMaintenanceResponse(&blocks[i]))
	}

	return resp, nil
}

func (s *ScheduleService) notifyBookingCreated(ctx context.Context, booking *entity.Booking) {
	if s.enqueuer == nil {
		return
	}

	err := s.enqueuer.EnqueueBookingCreated(ctx, worker.BookingCreatedPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	})
	if err != nil {
		// The booking is committed; the notification is best effort.
		logger.Error("ScheduleService:NotifyBookingCreated", err)
	}
}
