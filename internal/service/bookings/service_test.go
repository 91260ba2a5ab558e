package bookings

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/infra/broadcast"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/bookingfile"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TimeslotService/internal/service/names"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

func typesTime(s string) types.TimeString {
	return types.TimeString(s)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// testNow 10:05, слот 10:00 идёт прямо сейчас
var testNow = time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *broadcast.Hub) {
	t.Helper()

	dir := t.TempDir()

	store, err := bookingfile.NewRepository(filepath.Join(dir, "bookings.json"))
	require.NoError(t, err)

	hub := broadcast.NewHub()
	sanitizer := names.NewService("", "", 32, nopLogger{})

	svc := NewService(store, audit.NewWriter(dir), hub, sanitizer, time.Second, nopLogger{}, nil)
	svc.timeProvider = fixedClock{testNow}

	return svc, hub
}

func bookReq(start, device string) *models.BookRequest {
	return &models.BookRequest{
		Date:      testDate,
		StartTime: typesTime(start),
		RawName:   "Алиса",
		DeviceID:  device,
	}
}

func TestBookAndList(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Book(context.Background(), bookReq("10:30", "dev-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Алиса", resp.Username)

	occupancy, err := svc.ListBookings(context.Background(), testDate)
	require.NoError(t, err)
	require.Contains(t, occupancy, typesTime("10:30"))
	assert.Equal(t, "dev-1", occupancy[typesTime("10:30")].DeviceID)
}

func TestBookSanitizesName(t *testing.T) {
	svc, _ := newTestService(t)

	req := bookReq("10:30", "dev-1")
	req.RawName = "  Анна   Петровна  "

	resp, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Анна Петровна", resp.Username)

	occupancy, err := svc.ListBookings(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, "Анна Петровна", occupancy[typesTime("10:30")].Username)
}

func TestBookRejectsInvalidName(t *testing.T) {
	svc, _ := newTestService(t)

	req := bookReq("10:30", "dev-1")
	req.RawName = "   "

	_, err := svc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidName)

	// Слот остался свободным
	occupancy, listErr := svc.ListBookings(context.Background(), testDate)
	require.NoError(t, listErr)
	assert.NotContains(t, occupancy, typesTime("10:30"))
}

func TestBookExactlyOneWinner(t *testing.T) {
	svc, _ := newTestService(t)

	const contenders = 16

	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := bookReq("11:00", "dev-"+string(rune('a'+i)))
			_, errs[i] = svc.Book(context.Background(), req)
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestBookPastSlotRejectedForNonAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	// 09:30 закончился в 09:45, задолго до 10:05
	_, err := svc.Book(context.Background(), bookReq("09:30", "dev-1"))
	assert.ErrorIs(t, err, ErrSlotNotBookable)
}

func TestBookPastSlotAllowedForAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	req := bookReq("09:30", "dev-1")
	req.IsAdmin = true

	_, err := svc.Book(context.Background(), req)
	assert.NoError(t, err)
}

func TestBookCurrentSlotAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	// 10:00 идёт прямо сейчас (10:00 <= 10:05 < 10:15)
	_, err := svc.Book(context.Background(), bookReq("10:00", "dev-1"))
	assert.NoError(t, err)
}

func TestCancelThenRebook(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), bookReq("10:30", "dev-1"))
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "dev-1",
	})
	require.NoError(t, err)

	// Слот снова свободен для другого устройства
	_, err = svc.Book(context.Background(), bookReq("10:30", "dev-2"))
	assert.NoError(t, err)
}

func TestCancelNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "dev-1",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelSecondTimeReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), bookReq("10:30", "dev-1"))
	require.NoError(t, err)

	cancel := &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "dev-1",
	}

	require.NoError(t, svc.Cancel(context.Background(), cancel))
	assert.ErrorIs(t, svc.Cancel(context.Background(), cancel), ErrBookingNotFound)
}

func TestCancelRequiresOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Book(context.Background(), bookReq("10:30", "dev-1"))
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "dev-2",
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	// Администратор отменяет чужую бронь
	err = svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "dev-2",
		IsAdmin:   true,
	})
	assert.NoError(t, err)
}

func TestCancelKioskBookingRequiresAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	req := bookReq("10:30", "kiosk-1")
	req.Kiosk = true

	_, err := svc.Book(context.Background(), req)
	require.NoError(t, err)

	// Даже устройство-владелец не отменяет киосочную бронь
	err = svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "kiosk-1",
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		IsAdmin:   true,
	})
	assert.NoError(t, err)
}

func TestBookTimeoutWhenKeyHeld(t *testing.T) {
	svc, _ := newTestService(t)
	svc.lockTimeout = 50 * time.Millisecond

	key := "2025-03-10_10:30"
	require.NoError(t, svc.locker.Lock(context.Background(), key))
	defer svc.locker.Unlock(key)

	_, err := svc.Book(context.Background(), bookReq("10:30", "dev-1"))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestBookAndCancelPublishEvents(t *testing.T) {
	svc, hub := newTestService(t)

	sub := hub.Subscribe("2025-03-10")
	defer hub.Unsubscribe(sub)

	_, err := svc.Book(context.Background(), bookReq("10:30", "dev-1"))
	require.NoError(t, err)

	ev := <-sub.Events()
	assert.Equal(t, "2025-03-10", ev.Date)
	assert.Equal(t, "10:30", ev.StartTime)
	require.NotNil(t, ev.Occupant)
	assert.Equal(t, "Алиса", *ev.Occupant)

	err = svc.Cancel(context.Background(), &models.CancelRequest{
		Date:      testDate,
		StartTime: typesTime("10:30"),
		DeviceID:  "dev-1",
	})
	require.NoError(t, err)

	ev = <-sub.Events()
	assert.Nil(t, ev.Occupant)
}

func TestListBookingsEmptyDate(t *testing.T) {
	svc, _ := newTestService(t)

	occupancy, err := svc.ListBookings(context.Background(), testDate)
	require.NoError(t, err)
	assert.Empty(t, occupancy)
}
