package book_slot

import "errors"

var (
	// ErrInvalidDate возвращается для даты вне окна бронирования
	ErrInvalidDate = errors.New("book_slot: date is outside the booking window")

	// ErrInvalidSlot возвращается, когда время начала не совпадает
	// ни с одним слотом расписания (обед, нерабочие часы, не кратно шагу)
	ErrInvalidSlot = errors.New("book_slot: start time is not a valid slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")
)
