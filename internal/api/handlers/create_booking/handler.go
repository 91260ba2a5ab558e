package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/api/middleware"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings"
	bookSlot "github.com/m04kA/SMC-TimeslotService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректные дата или время, ожидается date=YYYY-MM-DD и startTime=HH:MM"
	msgDateOutOfRange     = "дата вне окна бронирования"
	msgInvalidSlot        = "время начала не совпадает ни с одним слотом расписания"
	msgInvalidName        = "недопустимое имя"
	msgSlotNotBookable    = "слот уже прошёл и недоступен для бронирования"
	msgSlotAlreadyBooked  = "слот уже занят"
	msgTimeout            = "слот занят другой операцией, повторите запрос"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)

		case errors.Is(err, bookSlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date outside window: date=%s", req.Date)
			handlers.RespondBadRequest(w, handlers.CodeInvalidDate, msgDateOutOfRange)

		case errors.Is(err, bookSlot.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot start: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, handlers.CodeInvalidSlot, msgInvalidSlot)

		case errors.Is(err, bookings.ErrInvalidName):
			h.logger.Warn("POST /bookings - Name rejected: device=%s", req.DeviceID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidName, msgInvalidName)

		case errors.Is(err, bookings.ErrSlotNotBookable):
			h.logger.Warn("POST /bookings - Slot not bookable: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondForbidden(w, handlers.CodeSlotNotBookable, msgSlotNotBookable)

		case errors.Is(err, bookings.ErrSlotAlreadyBooked):
			h.logger.Info("POST /bookings - Slot already booked: date=%s, time=%s, device=%s",
				req.Date, req.StartTime, req.DeviceID)
			handlers.RespondConflict(w, handlers.CodeSlotAlreadyBooked, msgSlotAlreadyBooked)

		case errors.Is(err, bookings.ErrTimeout):
			h.logger.Warn("POST /bookings - Lock timeout: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondTimeout(w, msgTimeout)

		default:
			h.logger.Error("POST /bookings - Failed to book slot: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Slot booked: id=%s, date=%s, time=%s, device=%s",
		result.ID, req.Date, req.StartTime, req.DeviceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
