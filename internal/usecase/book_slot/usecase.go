package book_slot

import (
	"context"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// UseCase use case бронирования слота: граничная валидация запроса,
// затем атомарное бронирование через сервис синхронизации
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

// Execute выполняет use case бронирования.
// Ошибки сервиса синхронизации (ErrSlotNotBookable, ErrSlotAlreadyBooked,
// ErrInvalidName, ErrTimeout) пробрасываются без изменения типа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: date=%s, time=%s, device=%s, admin=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DeviceID, req.IsAdmin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата обязана входить в окно бронирования
	now := uc.timeProvider.Now()
	window := domain.DateWindow(now, uc.windowDays, uc.skipWeekends)
	if err := validateDateInWindow(req.Date, window); err != nil {
		uc.logger.Warn("BookSlot: date outside window: %v", err)
		return nil, err
	}

	// 3. Время начала обязано совпадать со слотом расписания
	if err := validateSlotStart(req.StartTime); err != nil {
		uc.logger.Warn("BookSlot: invalid slot start: %v", err)
		return nil, err
	}

	// 4. Атомарное бронирование
	result, err := uc.bookingSvc.Book(ctx, req.toServiceRequest())
	if err != nil {
		// Типизированные ошибки сервиса дойдут до обработчика как есть
		return nil, err
	}

	uc.logger.Info("BookSlot: booked id=%s key=%s", result.ID,
		domain.SlotKey(result.Date, result.StartTime))

	return fromServiceResponse(result), nil
}
