package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aeroclub/core/errors"
	"aeroclub/modules/schedule/dto"
)

var weekStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

func TestReduceSelectionSingleCell(t *testing.T) {
	iv, appErr := ReduceSelection(weekStart, []dto.SelectionCell{{Day: 0, Hour: 10}})
	require.Nil(t, appErr)
	require.Equal(t, weekStart.Add(10*time.Hour), iv.Start)
	require.Equal(t, weekStart.Add(11*time.Hour), iv.End)
}

func TestReduceSelectionContiguousRun(t *testing.T) {
	iv, appErr := ReduceSelection(weekStart, []dto.SelectionCell{
		{Day: 2, Hour: 9},
		{Day: 2, Hour: 10},
		{Day: 2, Hour: 11},
	})
	require.Nil(t, appErr)
	require.Equal(t, weekStart.AddDate(0, 0, 2).Add(9*time.Hour), iv.Start)
	require.Equal(t, weekStart.AddDate(0, 0, 2).Add(12*time.Hour), iv.End)
}

func TestReduceSelectionUnsortedCells(t *testing.T) {
	iv, appErr := ReduceSelection(weekStart, []dto.SelectionCell{
		{Day: 0, Hour: 14},
		{Day: 0, Hour: 12},
		{Day: 0, Hour: 13},
	})
	require.Nil(t, appErr)
	require.Equal(t, weekStart.Add(12*time.Hour), iv.Start)
	require.Equal(t, weekStart.Add(15*time.Hour), iv.End)
}

func TestReduceSelectionMultiDaySpansOvernight(t *testing.T) {
	// Friday 18:00 through Saturday 05:00 selects a continuous trip
	// range including the overnight hours.
	iv, appErr := ReduceSelection(weekStart, []dto.SelectionCell{
		{Day: 4, Hour: 18},
		{Day: 5, Hour: 5},
	})
	require.Nil(t, appErr)
	require.Equal(t, weekStart.AddDate(0, 0, 4).Add(18*time.Hour), iv.Start)
	require.Equal(t, weekStart.AddDate(0, 0, 5).Add(6*time.Hour), iv.End)
	require.Equal(t, 36*time.Hour, iv.Duration())
}

func TestReduceSelectionNormalizesWeekStart(t *testing.T) {
	// A week start carrying a time-of-day component is anchored to
	// midnight before cells are applied.
	noisy := weekStart.Add(9*time.Hour + 30*time.Minute)
	iv, appErr := ReduceSelection(noisy, []dto.SelectionCell{{Day: 1, Hour: 8}})
	require.Nil(t, appErr)
	require.Equal(t, weekStart.AddDate(0, 0, 1).Add(8*time.Hour), iv.Start)
}

func TestReduceSelectionEmpty(t *testing.T) {
	_, appErr := ReduceSelection(weekStart, nil)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidRange, appErr.Code)
}

func TestReduceSelectionCellOutOfRange(t *testing.T) {
	for _, cells := range [][]dto.SelectionCell{
		{{Day: -1, Hour: 10}},
		{{Day: 0, Hour: -1}},
		{{Day: 0, Hour: 24}},
	} {
		_, appErr := ReduceSelection(weekStart, cells)
		require.NotNil(t, appErr)
		require.Equal(t, errors.ErrInvalidRange, appErr.Code)
	}
}
