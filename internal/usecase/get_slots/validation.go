package get_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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
