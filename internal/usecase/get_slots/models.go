package get_slots

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Request модель запроса на получение слотов даты
type Request struct {
	Date     time.Time // Дата (без времени)
	DeviceID string    // Идентификатор устройства (опционально, для отметки своих броней)
	IsAdmin  bool      // Вызов от имени администратора
}

// Response модель ответа со слотами даты
type Response struct {
	Date  time.Time
	Slots []Slot
}

// Slot объединённое представление слота: временной статус из модели
// доступности плюс занятость из сервиса синхронизации
type Slot struct {
	StartTime types.TimeString
	Section   domain.Section
	Status    domain.SlotStatus
	Bookable  bool    // Можно ли забронировать с учётом статуса и занятости
	Occupant  *string // Имя занявшего или nil для свободного слота
	Mine      bool    // Бронь принадлежит устройству из запроса
}
