package entity

import (
	"time"

	"github.com/google/uuid"
)

// OilLog records a top-up: how many quarts went in and the hobbs
// meter reading at the time.
type OilLog struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Date      time.Time `db:"date" json:"date"`
	Quarts    float64   `db:"quarts" json:"quarts"`
	HobbsTime float64   `db:"hobbs_time" json:"hobbs_time"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OilLogWithUser joins the reporting member's name for history views.
type OilLogWithUser struct {
	OilLog
	UserName string `db:"user_name" json:"user_name"`
}
