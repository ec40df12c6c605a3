package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"aeroclub/core/constants"
	"aeroclub/core/database"
	"aeroclub/core/logger"
	"aeroclub/modules/schedule/entity"
)

// ScheduleRepository is the interval store: the authoritative set of
// booking and maintenance records, with overlap queries and atomic
// insert/delete. All conflict-checked writes go through
// WithExclusiveSchedule.
type ScheduleRepository struct {
	DB database.Database
}

func NewScheduleRepository(db database.Database) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// ScheduleTx is the store surface available inside the exclusive
// section. Queries and inserts issued through it are serialized
// against every other conflict-checked write.
type ScheduleTx interface {
	OverlappingBookings(ctx context.Context, iv entity.Interval) ([]entity.Booking, error)
	OverlappingMaintenance(ctx context.Context, iv entity.Interval) ([]entity.MaintenanceBlock, error)
	InsertBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	InsertMaintenance(ctx context.Context, block *entity.MaintenanceBlock) (*entity.MaintenanceBlock, error)
}

// ScheduleRepositoryInterface defines the interval store contract.
type ScheduleRepositoryInterface interface {
	WithExclusiveSchedule(ctx context.Context, fn func(tx ScheduleTx) error) error

	GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	DeleteMaintenance(ctx context.Context, id uuid.UUID) error

	ListBookings(ctx context.Context) ([]entity.BookingWithUser, error)
	ListBookingsInRange(ctx context.Context, from time.Time, to time.Time) ([]entity.BookingWithUser, error)
	ListMaintenance(ctx context.Context) ([]entity.MaintenanceBlock, error)
	ListMaintenanceInRange(ctx context.Context, from time.Time, to time.Time) ([]entity.MaintenanceBlock, error)
}

// WithExclusiveSchedule runs fn inside a transaction holding the
// schedule advisory lock. Two concurrent check-then-insert sequences
// for the shared aircraft cannot interleave: the second blocks on the
// lock until the first commits, then sees its rows. fn returning an
// error rolls everything back; nothing is partially committed.
func (r *ScheduleRepository) WithExclusiveSchedule(ctx context.Context, fn func(tx ScheduleTx) error) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("ScheduleRepository:WithExclusiveSchedule:Begin", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, constants.ScheduleLockKey); err != nil {
		logger.Error("ScheduleRepository:WithExclusiveSchedule:Lock", err)
		return err
	}

	if err := fn(&scheduleTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("ScheduleRepository:WithExclusiveSchedule:Commit", err)
		return err
	}

	return nil
}

type scheduleTx struct {
	tx *sqlx.Tx
}

// Half-open overlap test: record.start < iv.End AND record.end > iv.Start.
// Booking [10:00,12:00) does not conflict with [12:00,14:00).

func (s *scheduleTx) OverlappingBookings(ctx context.Context, iv entity.Interval) ([]entity.Booking, error) {
	query := `
		SELECT id, user_id, start_time, end_time, destination, notes, created_at
		FROM bookings
		WHERE start_time < $1 AND end_time > $2
		ORDER BY start_time
	`

	var bookings []entity.Booking
	if err := s.tx.SelectContext(ctx, &bookings, query, iv.End, iv.Start); err != nil {
		logger.Error("ScheduleRepository:OverlappingBookings", err)
		return nil, err
	}

	return bookings, nil
}

func (s *scheduleTx) OverlappingMaintenance(ctx context.Context, iv entity.Interval) ([]entity.MaintenanceBlock, error) {
	query := `
		SELECT id, start_time, end_time, description, created_at
		FROM maintenance
		WHERE start_time < $1 AND end_time > $2
		ORDER BY start_time
	`

	var blocks []entity.MaintenanceBlock
	if err := s.tx.SelectContext(ctx, &blocks, query, iv.End, iv.Start); err != nil {
		logger.Error("ScheduleRepository:OverlappingMaintenance", err)
		return nil, err
	}

	return blocks, nil
}

func (s *scheduleTx) InsertBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, start_time, end_time, destination, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, start_time, end_time, destination, notes, created_at
	`

	var created entity.Booking
	err := s.tx.GetContext(ctx, &created, query,
		booking.UserID, booking.StartTime, booking.EndTime, booking.Destination, booking.Notes)
	if err != nil {
		logger.Error("ScheduleRepository:InsertBooking", err)
		return nil, err
	}

	return &created, nil
}

func (s *scheduleTx) InsertMaintenance(ctx context.Context, block *entity.MaintenanceBlock) (*entity.MaintenanceBlock, error) {
	query := `
		INSERT INTO maintenance (start_time, end_time, description)
		VALUES ($1, $2, $3)
		RETURNING id, start_time, end_time, description, created_at
	`

	var created entity.MaintenanceBlock
	err := s.tx.GetContext(ctx, &created, query,
		block.StartTime, block.EndTime, block.Description)
	if err != nil {
		logger.Error("ScheduleRepository:InsertMaintenance", err)
		return nil, err
	}

	return &created, nil
}

// ===================== Reads and deletes =====================

func (r *ScheduleRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, start_time, end_time, destination, notes, created_at
		FROM bookings WHERE id = $1
	`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetBookingByID", err)
		return nil, err
	}

	return &booking, nil
}

// DeleteBooking removes a booking. sql.ErrNoRows signals a missing id
// so callers can decide whether a double-cancel is benign.
func (r *ScheduleRepository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1 RETURNING id`

	var deleted uuid.UUID
	err := r.DB.GetContext(ctx, &deleted, query, id)
	if err != nil && err != sql.ErrNoRows {
		logger.Error("ScheduleRepository:DeleteBooking", err)
	}
	return err
}

func (r *ScheduleRepository) DeleteMaintenance(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM maintenance WHERE id = $1 RETURNING id`

	var deleted uuid.UUID
	err := r.DB.GetContext(ctx, &deleted, query, id)
	if err != nil && err != sql.ErrNoRows {
		logger.Error("ScheduleRepository:DeleteMaintenance", err)
	}
	return err
}

func (r *ScheduleRepository) ListBookings(ctx context.Context) ([]entity.BookingWithUser, error) {
	query := `
		SELECT b.id, b.user_id, b.start_time, b.end_time, b.destination, b.notes, b.created_at,
		       u.name AS user_name, u.color AS user_color
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.start_time
	`

	var bookings []entity.BookingWithUser
	if err := r.DB.SelectContext(ctx, &bookings, query); err != nil {
		logger.Error("ScheduleRepository:ListBookings", err)
		return nil, err
	}

	return bookings, nil
}

// ListBookingsInRange is the read-side range view for the calendar; it
// reuses the same half-open predicate but is not part of the conflict
// checking path.
func (r *ScheduleRepository) ListBookingsInRange(ctx context.Context, from time.Time, to time.Time) ([]entity.BookingWithUser, error) {
	query := `
		SELECT b.id, b.user_id, b.start_time, b.end_time, b.destination, b.notes, b.created_at,
		       u.name AS user_name, u.color AS user_color
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		WHERE b.start_time < $1 AND b.end_time > $2
		ORDER BY b.start_time
	`

	var bookings []entity.BookingWithUser
	if err := r.DB.SelectContext(ctx, &bookings, query, to, from); err != nil {
		logger.Error("ScheduleRepository:ListBookingsInRange", err)
		return nil, err
	}

	return bookings, nil
}

func (r *ScheduleRepository) ListMaintenance(ctx context.Context) ([]entity.MaintenanceBlock, error) {
	query := `
		SELECT id, start_time, end_time, description, created_at
		FROM maintenance
		ORDER BY start_time DESC
	`

	var blocks []entity.MaintenanceBlock
	if err := r.DB.SelectContext(ctx, &blocks, query); err != nil {
		logger.Error("ScheduleRepository:ListMaintenance", err)
		return nil, err
	}

	return blocks, nil
}

func (r *ScheduleRepository) ListMaintenanceInRange(ctx context.Context, from time.Time, to time.Time) ([]entity.MaintenanceBlock, error) {
	query := `
		SELECT id, start_time, end_time, description, created_at
		FROM maintenance
		WHERE start_time < $1 AND end_time > $2
		ORDER BY start_time
	`

	var blocks []entity.MaintenanceBlock
	if err := r.DB.SelectContext(ctx, &blocks, query, to, from); err != nil {
		logger.Error("ScheduleRepository:ListMaintenanceInRange", err)
		return nil, err
	}

	return blocks, nil
}
