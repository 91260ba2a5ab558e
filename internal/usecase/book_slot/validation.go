package book_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

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

	if req.DeviceID == "" {
		return fmt.Errorf("%w: deviceId is required", ErrInvalidInput)
	}

	return nil
}

// validateDateInWindow проверяет, что дата входит в окно бронирования
func validateDateInWindow(date time.Time, window []time.Time) error {
	if !domain.InWindow(date, window) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// validateSlotStart проверяет, что время начала совпадает с одним
// из канонических слотов расписания
func validateSlotStart(start types.TimeString) error {
	for _, rng := range [][2]types.TimeString{
		{types.TimeString(domain.DayStart), types.TimeString(domain.LunchStart)},
		{types.TimeString(domain.LunchEnd), types.TimeString(domain.DayEnd)},
	} {
		current := rng[0]
		for current.IsBefore(rng[1]) {
			if current == start {
				return nil
			}
			next, err := current.AddMinutes(domain.SlotDurationMinutes)
			if err != nil {
				break
			}
			current = next
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidSlot, start)
}
