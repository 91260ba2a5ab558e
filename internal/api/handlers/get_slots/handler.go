package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/api/middleware"
	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	getSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/get_slots"
)

const (
	msgDateRequired   = "не указана дата, ожидается параметр date=YYYY-MM-DD"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateOutOfRange = "дата вне окна бронирования"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD&deviceId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgDateRequired)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, rawDate, time.Local)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %q", rawDate)
		handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgInvalidDate)
		return
	}

	req := &getSlots.Request{
		Date:     date,
		DeviceID: r.URL.Query().Get("deviceId"),
		IsAdmin:  middleware.IsAdmin(r.Context()),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Date outside window: %s", rawDate)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgDateOutOfRange)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidDate)

		default:
			h.logger.Error("GET /slots - Failed to build slots: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
