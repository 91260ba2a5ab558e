package get_slots

import "errors"

var (
	// ErrInvalidDate возвращается для даты вне окна бронирования
	ErrInvalidDate = errors.New("get_slots: date is outside the booking window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
