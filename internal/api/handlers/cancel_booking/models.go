package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	cancelSlot "github.com/m04kA/SMC-TimeslotService/internal/usecase/cancel_slot"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "09:15"
	DeviceID  string `json:"deviceId"`
	Reason    string `json:"reason,omitempty"` // Учитывается только для администратора
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Status string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(isAdmin bool) (*cancelSlot.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, time.Local)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &cancelSlot.Request{
		Date:      date,
		StartTime: startTime,
		DeviceID:  r.DeviceID,
		Reason:    r.Reason,
		IsAdmin:   isAdmin,
	}, nil
}
