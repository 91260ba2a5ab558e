package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/api/middleware"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings"
	cancelSlot "github.com/m04kA/SMC-TimeslotService/internal/usecase/cancel_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректные дата или время, ожидается date=YYYY-MM-DD и startTime=HH:MM"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotOwner           = "бронирование принадлежит другому устройству"
	msgTimeout            = "слот занят другой операцией, повторите запрос"
)

type Handler struct {
	useCase CancelSlotUseCase
	logger  Logger
}

func NewHandler(useCase CancelSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings/cancel - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgInvalidDateOrTime)
		return
	}

	if err := h.useCase.Execute(r.Context(), useCaseReq); err != nil {
		switch {
		case errors.Is(err, cancelSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Info("POST /bookings/cancel - Booking not found: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrNotOwner):
			h.logger.Warn("POST /bookings/cancel - Not owner: date=%s, time=%s, device=%s",
				req.Date, req.StartTime, req.DeviceID)
			handlers.RespondForbidden(w, handlers.CodeNotOwner, msgNotOwner)

		case errors.Is(err, bookings.ErrTimeout):
			h.logger.Warn("POST /bookings/cancel - Lock timeout: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondTimeout(w, msgTimeout)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Booking cancelled: date=%s, time=%s, device=%s",
		req.Date, req.StartTime, req.DeviceID)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{Status: "cancelled"})
}
