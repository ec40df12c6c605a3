package service

import (
	"sort"
	"time"

	"aeroclub/core/errors"
	"aeroclub/modules/schedule/dto"
	"aeroclub/modules/schedule/entity"
)

// ReduceSelection turns a drag-selected run of (day, hour) calendar
// cells into the single canonical interval that gets conflict-checked
// and persisted. A selection spanning days runs continuously from the
// start hour on the first day through the end hour on the last day,
// overnight hours on intermediate days included.
func ReduceSelection(weekStart time.Time, cells []dto.SelectionCell) (entity.Interval, *errors.AppError) {
	if len(cells) == 0 {
		return entity.Interval{}, errors.NewAppError(errors.ErrInvalidRange, "selection is empty", nil)
	}

	for _, cell := range cells {
		if cell.Day < 0 || cell.Hour < 0 || cell.Hour > 23 {
			return entity.Interval{}, errors.NewAppError(errors.ErrInvalidRange, "selection cell out of range", nil)
		}
	}

	sorted := make([]dto.SelectionCell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Hour < sorted[j].Hour
	})

	first := sorted[0]
	last := sorted[len(sorted)-1]

	day := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	start := day.AddDate(0, 0, first.Day).Add(time.Duration(first.Hour) * time.Hour)
	// Each cell covers [hour, hour+1), so the run ends one hour past
	// the last cell's hour.
	end := day.AddDate(0, 0, last.Day).Add(time.Duration(last.Hour+1) * time.Hour)

	iv := entity.Interval{Start: start, End: end}
	if !iv.IsValid() {
		return entity.Interval{}, errors.NewAppError(errors.ErrInvalidRange, "selection does not form a valid range", nil)
	}

	return iv, nil
}
