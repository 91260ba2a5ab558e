package get_server_time

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// GetServerTimeResponse HTTP response model.
// Клиенты используют серверное время вместо локальных часов устройства
// при вычислении статусов слотов.
type GetServerTimeResponse struct {
	Now      string `json:"now"`      // RFC3339
	UnixMs   int64  `json:"unixMs"`   // Миллисекунды для арифметики на клиенте
	Timezone string `json:"timezone"` // Имя локальной зоны сервера
}

type Handler struct {
	timeProvider TimeProvider
}

func NewHandler() *Handler {
	return &Handler{
		timeProvider: &RealTimeProvider{},
	}
}

// Handle GET /api/v1/time
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := h.timeProvider.Now()
	zone, _ := now.Zone()

	handlers.RespondJSON(w, http.StatusOK, GetServerTimeResponse{
		Now:      now.Format(time.RFC3339),
		UnixMs:   now.UnixMilli(),
		Timezone: zone,
	})
}
