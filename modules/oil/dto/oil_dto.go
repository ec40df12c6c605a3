package dto

import (
	"time"

	"github.com/google/uuid"

	"aeroclub/modules/oil/entity"
)

type CreateOilLogRequest struct {
	Quarts    float64 `json:"quarts"`
	HobbsTime float64 `json:"hobbs_time"`
	Notes     string  `json:"notes"`
}

type OilLogResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      time.Time `json:"date"`
	Quarts    float64   `json:"quarts"`
	HobbsTime float64   `json:"hobbs_time"`
	Notes     *string   `json:"notes,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
}

// ConsumptionStatsResponse summarizes oil burn across the log:
// quarts added between the earliest and latest hobbs readings.
type ConsumptionStatsResponse struct {
	Entries       int     `json:"entries"`
	TotalQuarts   float64 `json:"total_quarts"`
	HobbsDelta    float64 `json:"hobbs_delta"`
	QuartsPerHour float64 `json:"quarts_per_hour"`
}

func ToOilLogResponse(log *entity.OilLog) *OilLogResponse {
	return &OilLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Date:      log.Date,
		Quarts:    log.Quarts,
		HobbsTime: log.HobbsTime,
		Notes:     log.Notes,
	}
}

func ToOilLogWithUserResponse(log *entity.OilLogWithUser) *OilLogResponse {
	resp := ToOilLogResponse(&log.OilLog)
	resp.UserName = log.UserName
	return resp
}
