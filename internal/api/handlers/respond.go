package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые коды ошибок API. Каждому известному отказу соответствует
// свой код: клиент никогда не получает безликое "что-то пошло не так".
const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidDate       = "invalid_date"
	CodeInvalidSlot       = "invalid_slot"
	CodeInvalidName       = "invalid_name"
	CodeSlotNotBookable   = "slot_not_bookable"
	CodeSlotAlreadyBooked = "slot_already_booked"
	CodeNotFound          = "not_found"
	CodeNotOwner          = "not_owner"
	CodeTimeout           = "timeout"
	CodeRateLimited       = "rate_limited"
	CodeInternal          = "internal_error"
)

// ErrorResponse единый конверт ошибки API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody тело ошибки с кодом и человекочитаемым сообщением
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в v, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		// Ошибку кодирования уже не доставить клиенту - заголовки ушли
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет типизированную ошибку с кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondBadRequest ошибка 400
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound ошибка 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden ошибка 403
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondConflict ошибка 409
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondTimeout ошибка 503: запрос можно повторить с backoff
func RespondTimeout(w http.ResponseWriter, message string) {
	w.Header().Set("Retry-After", "1")
	RespondError(w, http.StatusServiceUnavailable, CodeTimeout, message)
}

// RespondInternalError ошибка 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "внутренняя ошибка сервиса")
}
