package subscribe_slots

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/metrics"
)

const (
	msgDateRequired = "не указана дата, ожидается параметр date=YYYY-MM-DD"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

type Handler struct {
	hub     SlotEventHub
	logger  Logger
	metrics *metrics.Metrics

	upgrader websocket.Upgrader
}

// NewHandler создает обработчик подписки. metricsCollector может быть nil.
func NewHandler(hub SlotEventHub, logger Logger, metricsCollector *metrics.Metrics) *Handler {
	return &Handler{
		hub:     hub,
		logger:  logger,
		metrics: metricsCollector,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Портал и API раздаются с одного хоста, CORS решается выше
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle GET /api/v1/ws?date=YYYY-MM-DD
//
// Поток событий даты. Каждое сообщение - JSON с полями date, startTime
// и occupant (null для освободившегося слота). События могут теряться
// при переполнении очереди, клиент обязан периодически сверяться
// с GET /slots.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgDateRequired)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, rawDate, time.Local)
	if err != nil {
		h.logger.Warn("GET /ws - Invalid date: %q", rawDate)
		handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgInvalidDate)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам ответил клиенту
		h.logger.Warn("GET /ws - Upgrade failed: %v", err)
		return
	}

	normalized := date.Format(domain.DateFormat)
	sub := h.hub.Subscribe(normalized)
	h.logger.Info("GET /ws - Subscriber connected: date=%s, remote=%s", normalized, r.RemoteAddr)

	if h.metrics != nil {
		h.metrics.Subscribers.Inc()
	}

	done := make(chan struct{})

	// Читатель: входящие сообщения игнорируются, интересен только
	// момент закрытия соединения
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.hub.Unsubscribe(sub)
		_ = conn.Close()
		if h.metrics != nil {
			h.metrics.Subscribers.Dec()
		}
		h.logger.Info("GET /ws - Subscriber disconnected: date=%s, remote=%s", normalized, r.RemoteAddr)
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
