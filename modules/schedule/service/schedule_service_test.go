package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"aeroclub/core/constants"
	"aeroclub/core/errors"
	"aeroclub/modules/schedule/dto"
	"aeroclub/modules/schedule/entity"
	"aeroclub/modules/schedule/repository"
)

// memoryStore is an in-memory interval store. WithExclusiveSchedule
// holds a mutex for the whole check-then-insert sequence and stages
// writes so a failed section leaves no trace, matching the
// transactional store's behavior.
type memoryStore struct {
	mu          sync.Mutex
	bookings    []entity.Booking
	maintenance []entity.MaintenanceBlock
}

type memoryTx struct {
	store   *memoryStore
	staged  []entity.Booking
	stagedM []entity.MaintenanceBlock
}

func (m *memoryStore) WithExclusiveSchedule(ctx context.Context, fn func(tx repository.ScheduleTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{store: m}
	if err := fn(tx); err != nil {
		return err
	}

	m.bookings = append(m.bookings, tx.staged...)
	m.maintenance = append(m.maintenance, tx.stagedM...)
	return nil
}

func (t *memoryTx) OverlappingBookings(ctx context.Context, iv entity.Interval) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range t.store.bookings {
		if b.Interval().Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memoryTx) OverlappingMaintenance(ctx context.Context, iv entity.Interval) ([]entity.MaintenanceBlock, error) {
	var out []entity.MaintenanceBlock
	for _, m := range t.store.maintenance {
		block := entity.Interval{Start: m.StartTime, End: m.EndTime}
		if block.Overlaps(iv) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (t *memoryTx) InsertBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	created := *booking
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	t.staged = append(t.staged, created)
	return &created, nil
}

func (t *memoryTx) InsertMaintenance(ctx context.Context, block *entity.MaintenanceBlock) (*entity.MaintenanceBlock, error) {
	created := *block
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	t.stagedM = append(t.stagedM, created)
	return &created, nil
}

func (m *memoryStore) GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bookings {
		if b.ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryStore) DeleteMaintenance(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.maintenance {
		if b.ID == id {
			m.maintenance = append(m.maintenance[:i], m.maintenance[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryStore) ListBookings(ctx context.Context) ([]entity.BookingWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.BookingWithUser, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, entity.BookingWithUser{Booking: b})
	}
	return out, nil
}

func (m *memoryStore) ListBookingsInRange(ctx context.Context, from time.Time, to time.Time) ([]entity.BookingWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	window := entity.Interval{Start: from, End: to}
	var out []entity.BookingWithUser
	for _, b := range m.bookings {
		if b.Interval().Overlaps(window) {
			out = append(out, entity.BookingWithUser{Booking: b})
		}
	}
	return out, nil
}

func (m *memoryStore) ListMaintenance(ctx context.Context) ([]entity.MaintenanceBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.MaintenanceBlock(nil), m.maintenance...), nil
}

func (m *memoryStore) ListMaintenanceInRange(ctx context.Context, from time.Time, to time.Time) ([]entity.MaintenanceBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	window := entity.Interval{Start: from, End: to}
	var out []entity.MaintenanceBlock
	for _, b := range m.maintenance {
		block := entity.Interval{Start: b.StartTime, End: b.EndTime}
		if block.Overlaps(window) {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ repository.ScheduleRepositoryInterface = (*memoryStore)(nil)

func newTestService() (ScheduleServiceInterface, *memoryStore) {
	store := &memoryStore{}
	return NewScheduleService(store, nil), store
}

func bookingReq(startHour, endHour int) *dto.CreateBookingRequest {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &dto.CreateBookingRequest{
		StartTime: day.Add(time.Duration(startHour) * time.Hour),
		EndTime:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func maintenanceReq(startHour, endHour int) *dto.CreateMaintenanceRequest {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &dto.CreateMaintenanceRequest{
		StartTime:   day.Add(time.Duration(startHour) * time.Hour),
		EndTime:     day.Add(time.Duration(endHour) * time.Hour),
		Description: "100-hour inspection",
	}
}

func TestCreateBookingCarriesTripFields(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	req := bookingReq(10, 12)
	req.Destination = "KPAO"
	req.Notes = "weekend trip"

	created, appErr := svc.CreateBooking(ctx, uuid.New(), req)
	require.Nil(t, appErr)
	require.NotNil(t, created.Destination)
	require.Equal(t, "KPAO", *created.Destination)
	require.NotNil(t, created.Notes)
	require.Equal(t, "weekend trip", *created.Notes)

	require.Len(t, store.bookings, 1)
	require.NotNil(t, store.bookings[0].Destination)
	require.Equal(t, "KPAO", *store.bookings[0].Destination)

	// Omitted fields stay null rather than empty strings.
	plain, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(14, 16))
	require.Nil(t, appErr)
	require.Nil(t, plain.Destination)
	require.Nil(t, plain.Notes)
}

func TestCreateBookingRejectsInvalidRange(t *testing.T) {
	svc, store := newTestService()

	_, appErr := svc.CreateBooking(context.Background(), uuid.New(), bookingReq(12, 10))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidRange, appErr.Code)

	_, appErr = svc.CreateBooking(context.Background(), uuid.New(), bookingReq(10, 10))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidRange, appErr.Code)

	// Invalid proposals never reach the store.
	require.Empty(t, store.bookings)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	first, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
	require.Nil(t, appErr)
	require.NotEqual(t, uuid.Nil, first.ID)

	for _, req := range []*dto.CreateBookingRequest{
		bookingReq(10, 12), // identical
		bookingReq(11, 13), // partial
		bookingReq(9, 14),  // containing
		bookingReq(11, 12), // contained
	} {
		_, appErr := svc.CreateBooking(ctx, uuid.New(), req)
		require.NotNil(t, appErr)
		require.Equal(t, errors.ErrSlotTaken, appErr.Code)
	}

	require.Len(t, store.bookings, 1)
}

func TestCreateBookingAllowsBackToBack(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
	require.Nil(t, appErr)

	created, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(12, 14))
	require.Nil(t, appErr, "a booking starting exactly when another ends must be accepted")
	require.NotNil(t, created)
}

func TestCreateBookingRejectsMaintenanceOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, appErr := svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(8, 17))
	require.Nil(t, appErr)

	_, appErr = svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrMaintenanceConflict, appErr.Code)

	// Adjacent to the blackout is fine.
	_, appErr = svc.CreateBooking(ctx, uuid.New(), bookingReq(17, 19))
	require.Nil(t, appErr)
}

func TestCreateMaintenanceYieldsToBookings(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
	require.Nil(t, appErr)

	_, appErr = svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(11, 15))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrMaintenanceConflict, appErr.Code)
	require.Empty(t, store.maintenance)

	_, appErr = svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(12, 15))
	require.Nil(t, appErr)
}

func TestCreateMaintenanceRejectsMaintenanceOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, appErr := svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(8, 12))
	require.Nil(t, appErr)

	_, appErr = svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(10, 14))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrMaintenanceConflict, appErr.Code)
}

func TestCreateMaintenanceRequiresOwner(t *testing.T) {
	svc, store := newTestService()

	_, appErr := svc.CreateMaintenance(context.Background(), constants.RoleRenter, maintenanceReq(8, 12))
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
	require.Empty(t, store.maintenance)
}

func TestCancelBookingPermissions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	renter := uuid.New()
	created, appErr := svc.CreateBooking(ctx, renter, bookingReq(10, 12))
	require.Nil(t, appErr)

	// A different renter cannot cancel it.
	appErr = svc.CancelBooking(ctx, uuid.New(), constants.RoleRenter, created.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	// The club owner can.
	appErr = svc.CancelBooking(ctx, uuid.New(), constants.RoleOwner, created.ID)
	require.Nil(t, appErr)

	// Gone now.
	appErr = svc.CancelBooking(ctx, renter, constants.RoleRenter, created.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCancelBookingFreesSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	renter := uuid.New()
	created, appErr := svc.CreateBooking(ctx, renter, bookingReq(10, 12))
	require.Nil(t, appErr)

	require.Nil(t, svc.CancelBooking(ctx, renter, constants.RoleRenter, created.ID))

	_, appErr = svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
	require.Nil(t, appErr, "cancelled slot must be bookable again")
}

func TestCancelMaintenance(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	created, appErr := svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(8, 12))
	require.Nil(t, appErr)

	appErr = svc.CancelMaintenance(ctx, constants.RoleRenter, created.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	require.Nil(t, svc.CancelMaintenance(ctx, constants.RoleOwner, created.ID))
	require.Empty(t, store.maintenance)

	appErr = svc.CancelMaintenance(ctx, constants.RoleOwner, created.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCreateBookingFromSelection(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	week := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created, appErr := svc.CreateBookingFromSelection(ctx, uuid.New(), &dto.CreateBookingFromSelectionRequest{
		WeekStart: week,
		Cells: []dto.SelectionCell{
			{Day: 0, Hour: 10},
			{Day: 0, Hour: 11},
		},
		Destination: "KHAF",
	})
	require.Nil(t, appErr)
	require.Equal(t, week.Add(10*time.Hour), created.StartTime)
	require.Equal(t, week.Add(12*time.Hour), created.EndTime)
	require.NotNil(t, created.Destination)
	require.Equal(t, "KHAF", *created.Destination)
	require.Len(t, store.bookings, 1)

	// The reduced interval goes through the same conflict path.
	_, appErr = svc.CreateBookingFromSelection(ctx, uuid.New(), &dto.CreateBookingFromSelectionRequest{
		WeekStart: week,
		Cells:     []dto.SelectionCell{{Day: 0, Hour: 11}},
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrSlotTaken, appErr.Code)
}

func TestGetWeekSchedule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	week := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
	require.Nil(t, appErr)
	_, appErr = svc.CreateMaintenance(ctx, constants.RoleOwner, maintenanceReq(14, 16))
	require.Nil(t, appErr)

	// A booking in the following week stays out of this week's view.
	_, appErr = svc.CreateBooking(ctx, uuid.New(), &dto.CreateBookingRequest{
		StartTime: week.AddDate(0, 0, 8),
		EndTime:   week.AddDate(0, 0, 8).Add(2 * time.Hour),
	})
	require.Nil(t, appErr)

	resp, appErr := svc.GetWeekSchedule(ctx, week)
	require.Nil(t, appErr)
	require.Len(t, resp.Bookings, 1)
	require.Len(t, resp.Maintenance, 1)
	require.Equal(t, week, resp.WeekStart)
	require.Equal(t, week.AddDate(0, 0, 7), resp.WeekEnd)
}

// TestConcurrentBookingSingleWinner races many identical proposals
// through the resolver. Exactly one commits; every loser gets a slot
// conflict and the store ends with one booking.
func TestConcurrentBookingSingleWinner(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	const contenders = 32
	results := make(chan *errors.AppError, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, appErr := svc.CreateBooking(ctx, uuid.New(), bookingReq(10, 12))
			results <- appErr
		}()
	}
	wg.Wait()
	close(results)

	winners, losers := 0, 0
	for appErr := range results {
		if appErr == nil {
			winners++
		} else {
			require.Equal(t, errors.ErrSlotTaken, appErr.Code)
			losers++
		}
	}

	require.Equal(t, 1, winners)
	require.Equal(t, contenders-1, losers)
	require.Len(t, store.bookings, 1)
}

// TestConcurrentMixedWritesStayDisjoint hammers the resolver with
// overlapping and disjoint proposals and then checks the committed
// schedule is pairwise non-overlapping.
func TestConcurrentMixedWritesStayDisjoint(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 48; i++ {
		start := i % 12 // plenty of collisions
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			svc.CreateBooking(ctx, uuid.New(), bookingReq(start, start+2))
		}(start)
	}
	wg.Wait()

	require.NotEmpty(t, store.bookings)
	for i := range store.bookings {
		for j := i + 1; j < len(store.bookings); j++ {
			require.False(t,
				store.bookings[i].Interval().Overlaps(store.bookings[j].Interval()),
				"committed bookings must never overlap")
		}
	}
}
