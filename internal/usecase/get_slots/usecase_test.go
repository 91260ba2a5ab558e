package get_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubBookingService struct {
	occupancy models.Occupancy
	err       error
}

func (s *stubBookingService) ListBookings(ctx context.Context, date time.Time) (models.Occupancy, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.occupancy, nil
}

func TestExecuteMergesOccupancy(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	alice := "Алиса"

	svc := &stubBookingService{occupancy: models.Occupancy{
		"10:15": &models.BookingResponse{Username: alice, DeviceID: "dev-1"},
	}}

	uc := NewUseCase(svc, 3, false, nopLogger{})
	uc.timeProvider = fixedClock{now}

	resp, err := uc.Execute(context.Background(), &Request{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DeviceID: "dev-1",
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 28)

	byStart := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s
	}

	booked := byStart["10:15"]
	require.NotNil(t, booked.Occupant)
	assert.Equal(t, alice, *booked.Occupant)
	assert.True(t, booked.Mine)
	assert.False(t, booked.Bookable)

	free := byStart["10:30"]
	assert.Nil(t, free.Occupant)
	assert.True(t, free.Bookable)
	assert.False(t, free.Mine)

	past := byStart["09:30"]
	assert.False(t, past.Bookable)
	assert.Equal(t, domain.StatusPast, past.Status)
}

func TestExecutePastSlotsBookableForAdmin(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	uc := NewUseCase(&stubBookingService{}, 3, false, nopLogger{})
	uc.timeProvider = fixedClock{now}

	resp, err := uc.Execute(context.Background(), &Request{
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		IsAdmin: true,
	})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.True(t, s.Bookable, "slot %s must be bookable for admin", s.StartTime)
	}
}

func TestExecuteOccupiedMineRequiresDevice(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	svc := &stubBookingService{occupancy: models.Occupancy{
		"09:00": &models.BookingResponse{Username: "Боб", DeviceID: "dev-2"},
	}}

	uc := NewUseCase(svc, 3, false, nopLogger{})
	uc.timeProvider = fixedClock{now}

	resp, err := uc.Execute(context.Background(), &Request{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DeviceID: "dev-1",
	})
	require.NoError(t, err)

	assert.False(t, resp.Slots[0].Mine)
}

func TestExecuteDateOutsideWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	uc := NewUseCase(&stubBookingService{}, 3, false, nopLogger{})
	uc.timeProvider = fixedClock{now}

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteServiceFailure(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	uc := NewUseCase(&stubBookingService{err: errors.New("boom")}, 3, false, nopLogger{})
	uc.timeProvider = fixedClock{now}

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	uc := NewUseCase(&stubBookingService{}, 3, false, nopLogger{})
	uc.timeProvider = fixedClock{now}

	window := uc.Window(context.Background())
	require.Len(t, window, 3)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), window[0])
}
