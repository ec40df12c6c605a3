package dto

import (
	"time"

	"github.com/google/uuid"

	"aeroclub/modules/schedule/entity"
)

// CreateBookingRequest proposes a single continuous interval. The
// calendar layer reduces any multi-cell selection before this point;
// a booking is never composed of disjoint sub-intervals.
type CreateBookingRequest struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Destination string    `json:"destination"`
	Notes       string    `json:"notes"`
}

// SelectionCell identifies one calendar cell by day offset within the
// requested week and hour of day.
type SelectionCell struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// CreateBookingFromSelectionRequest carries a raw drag-selection. The
// server reduces it to the canonical interval before conflict checking.
type CreateBookingFromSelectionRequest struct {
	WeekStart   time.Time       `json:"week_start"`
	Cells       []SelectionCell `json:"cells"`
	Destination string          `json:"destination"`
	Notes       string          `json:"notes"`
}

type CreateMaintenanceRequest struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
}

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Destination *string   `json:"destination,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	UserColor   string    `json:"user_color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MaintenanceResponse struct {
	ID          uuid.UUID `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// WeekScheduleResponse is the read-side calendar view: everything
// touching the requested window, bookings and blackouts together.
type WeekScheduleResponse struct {
	WeekStart   time.Time             `json:"week_start"`
	WeekEnd     time.Time             `json:"week_end"`
	Bookings    []BookingResponse     `json:"bookings"`
	Maintenance []MaintenanceResponse `json:"maintenance"`
}

func ToBookingResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Destination: b.Destination,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
}

func ToBookingWithUserResponse(b *entity.BookingWithUser) *BookingResponse {
	resp := ToBookingResponse(&b.Booking)
	resp.UserName = b.UserName
	resp.UserColor = b.UserColor
	return resp
}

func ToMaintenanceResponse(m *entity.MaintenanceBlock) *MaintenanceResponse {
	return &MaintenanceResponse{
		ID:          m.ID,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
