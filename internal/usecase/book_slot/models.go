package book_slot

import (
	"time"

	serviceModels "github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	Date      time.Time
	StartTime types.TimeString
	Name      string // Имя до санации
	DeviceID  string
	Kiosk     bool
	IsAdmin   bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	Date      time.Time
	StartTime types.TimeString
	Username  string // Имя после санации
	Kiosk     bool
	CreatedAt time.Time
}

// toServiceRequest конвертирует запрос usecase в модель сервиса
func (r *Request) toServiceRequest() *serviceModels.BookRequest {
	return &serviceModels.BookRequest{
		Date:      r.Date,
		StartTime: r.StartTime,
		RawName:   r.Name,
		DeviceID:  r.DeviceID,
		Kiosk:     r.Kiosk,
		IsAdmin:   r.IsAdmin,
	}
}

// fromServiceResponse конвертирует ответ сервиса в модель usecase
func fromServiceResponse(resp *serviceModels.BookingResponse) *Response {
	return &Response{
		ID:        resp.ID,
		Date:      resp.Date,
		StartTime: resp.StartTime,
		Username:  resp.Username,
		Kiosk:     resp.Kiosk,
		CreatedAt: resp.CreatedAt,
	}
}
