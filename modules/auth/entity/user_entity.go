package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a club member. Role "owner" is the privileged principal;
// everyone else rents.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Color     string    `db:"color" json:"color"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PaginatedUserEntity is the owner-facing member listing page.
type PaginatedUserEntity struct {
	Items      []User `json:"items"`
	TotalItems int    `json:"total_items"`
	PageNumber int    `json:"page_number"`
	PageSize   int    `json:"page_size"`
}

// UserColors is the calendar palette; members are assigned a color
// round-robin at registration so their bookings are tellable apart.
var UserColors = []string{
	"#3B82F6", // Blue
	"#22C55E", // Green
	"#F97316", // Orange
	"#8B5CF6", // Purple
	"#EC4899", // Pink
	"#14B8A6", // Teal
	"#EF4444", // Red
	"#6366F1", // Indigo
	"#84CC16", // Lime
	"#06B6D4", // Cyan
}
