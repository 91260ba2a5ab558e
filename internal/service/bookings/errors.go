package bookings

import "errors"

var (
	// ErrSlotNotBookable возвращается при попытке забронировать
	// прошедший слот без прав администратора
	ErrSlotNotBookable = errors.New("bookings: slot is not bookable")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят
	// (в том числе проигравшим в гонке за слот)
	ErrSlotAlreadyBooked = errors.New("bookings: slot is already booked")

	// ErrInvalidName возвращается, когда имя не прошло санацию
	ErrInvalidName = errors.New("bookings: invalid display name")

	// ErrBookingNotFound возвращается при отмене несуществующего бронирования
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrNotOwner возвращается, когда отмену запрашивает не владелец
	// бронирования и не администратор
	ErrNotOwner = errors.New("bookings: booking belongs to another device")

	// ErrTimeout возвращается, когда блокировку слота не удалось взять
	// за отведённое время. Единственная ошибка, которую клиенту имеет
	// смысл повторить.
	ErrTimeout = errors.New("bookings: operation timed out")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
