package cancel_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	serviceModels "github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	Date      time.Time
	StartTime types.TimeString
	DeviceID  string
	Reason    string // Учитывается только для администратора
	IsAdmin   bool
}

// UseCase use case отмены бронирования
type UseCase struct {
	bookingSvc BookingService
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingSvc BookingService, logger Logger) *UseCase {
	return &UseCase{
		bookingSvc: bookingSvc,
		logger:     logger,
	}
}

// Execute выполняет use case отмены.
// Ошибки сервиса синхронизации (ErrBookingNotFound, ErrNotOwner,
// ErrTimeout) пробрасываются без изменения типа. Окно дат не
// проверяется: администратор может чистить и прошедшие даты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelSlot: date=%s, time=%s, device=%s, admin=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DeviceID, req.IsAdmin)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelSlot: validation failed: %v", err)
		return err
	}

	err := uc.bookingSvc.Cancel(ctx, &serviceModels.CancelRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		DeviceID:  req.DeviceID,
		Reason:    req.Reason,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		return err
	}

	uc.logger.Info("CancelSlot: cancelled key=%s", domain.SlotKey(req.Date, req.StartTime))
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DeviceID == "" && !req.IsAdmin {
		return fmt.Errorf("%w: deviceId is required", ErrInvalidInput)
	}

	return nil
}
