package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a member-owned exclusive reservation of the aircraft.
// It lives until explicitly cancelled; it never auto-expires.
type Booking struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Destination *string   `db:"destination" json:"destination,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookingWithUser joins the owner's display fields for calendar views.
type BookingWithUser struct {
	Booking
	UserName  string `db:"user_name" json:"user_name"`
	UserColor string `db:"user_color" json:"user_color"`
}

// MaintenanceBlock is an owner-scheduled blackout window. No booking
// may overlap it, and it cannot be placed over a live booking.
type MaintenanceBlock struct {
	ID          uuid.UUID `db:"id" json:"id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (m *MaintenanceBlock) Interval() Interval {
	return Interval{Start: m.StartTime, End: m.EndTime}
}
