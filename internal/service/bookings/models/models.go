package models

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// BookRequest запрос на бронирование слота
type BookRequest struct {
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Время начала слота
	RawName   string           // Имя до санации
	DeviceID  string           // Идентификатор устройства клиента
	Kiosk     bool             // Бронирование сделано с киоска
	IsAdmin   bool             // Вызов от имени администратора
}

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	Date      time.Time
	StartTime types.TimeString
	DeviceID  string
	Reason    string // Причина для журнала (только для администратора)
	IsAdmin   bool
}

// BookingResponse модель ответа с бронированием
type BookingResponse struct {
	ID        string
	Date      time.Time
	StartTime types.TimeString
	Username  string // Имя после санации
	DeviceID  string
	Kiosk     bool
	CreatedAt time.Time
}

// FromDomainBooking конвертирует доменную модель в ответ сервиса
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		Date:      b.Date,
		StartTime: b.StartTime,
		Username:  b.Username,
		DeviceID:  b.DeviceID,
		Kiosk:     b.Kiosk,
		CreatedAt: b.CreatedAt,
	}
}

// Occupancy текущая занятость слотов одной даты:
// время начала слота -> бронирование
type Occupancy map[types.TimeString]*BookingResponse
