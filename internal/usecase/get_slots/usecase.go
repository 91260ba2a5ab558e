package get_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/ptr"
)

// UseCase use case получения слотов даты: модель доступности,
// объединённая с текущей занятостью
type UseCase struct {
	bookingSvc   BookingService
	timeProvider TimeProvider
	logger       Logger

	windowDays   int
	skipWeekends bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingSvc BookingService,
	windowDays int,
	skipWeekends bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingSvc:   bookingSvc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		windowDays:   windowDays,
		skipWeekends: skipWeekends,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: date=%s, device=%s", req.Date.Format(domain.DateFormat), req.DeviceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время сервера - единственный источник для статусов
	now := uc.timeProvider.Now()

	// 3. Дата обязана входить в окно бронирования
	window := domain.DateWindow(now, uc.windowDays, uc.skipWeekends)
	if err := validateDateInWindow(req.Date, window); err != nil {
		uc.logger.Warn("GetSlots: date outside window: %v", err)
		return nil, err
	}

	// 4. Канонический список слотов с временными статусами
	timeSlots := generateTimeSlots(domain.Midnight(req.Date), now)

	// 5. Текущая занятость от сервиса синхронизации
	occupancy, err := uc.bookingSvc.ListBookings(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
	}

	// 6. Объединяем статус и занятость в единое представление
	slots := make([]Slot, len(timeSlots))
	for i, ts := range timeSlots {
		slot := Slot{
			StartTime: ts.StartTime,
			Section:   ts.Section,
			Status:    ts.Status,
		}

		if booking, ok := occupancy[ts.StartTime]; ok {
			slot.Occupant = ptr.Ptr(booking.Username)
			slot.Mine = req.DeviceID != "" && booking.DeviceID == req.DeviceID
			slot.Bookable = false
		} else {
			slot.Bookable = ts.BookableBy(req.IsAdmin)
		}

		slots[i] = slot
	}

	uc.logger.Info("GetSlots: %d slots for date=%s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  domain.Midnight(req.Date),
		Slots: slots,
	}, nil
}

// Window возвращает текущее окно бронирования.
// Используется обработчиком списка дат.
func (uc *UseCase) Window(ctx context.Context) []time.Time {
	return domain.DateWindow(uc.timeProvider.Now(), uc.windowDays, uc.skipWeekends)
}
