package bookingfile

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookingfile: %w", storage.ErrNotFound)

	// ErrDuplicateKey возвращается при попытке создать бронирование
	// на уже занятый слот
	ErrDuplicateKey = fmt.Errorf("bookingfile: %w", storage.ErrDuplicateKey)

	// ErrLoadFile возвращается при ошибке чтения файла бронирований
	ErrLoadFile = errors.New("bookingfile: failed to load bookings file")

	// ErrPersistFile возвращается при ошибке записи файла бронирований
	ErrPersistFile = errors.New("bookingfile: failed to persist bookings file")
)
