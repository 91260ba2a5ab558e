package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	bookSlot "github.com/m04kA/SMC-TimeslotService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "09:15"
	Name      string `json:"name"`
	DeviceID  string `json:"deviceId"`
	Kiosk     bool   `json:"kiosk,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Name      string `json:"name"` // Имя после санации
	Kiosk     bool   `json:"kiosk"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(isAdmin bool) (*bookSlot.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, time.Local)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookSlot.Request{
		Date:      date,
		StartTime: startTime,
		Name:      r.Name,
		DeviceID:  r.DeviceID,
		Kiosk:     r.Kiosk,
		IsAdmin:   isAdmin,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		Name:      resp.Username,
		Kiosk:     resp.Kiosk,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
