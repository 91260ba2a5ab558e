package bookingpg

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookingpg: %w", storage.ErrNotFound)

	// ErrDuplicateKey возвращается при попытке создать бронирование
	// на уже занятый слот
	ErrDuplicateKey = fmt.Errorf("bookingpg: %w", storage.ErrDuplicateKey)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingpg: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingpg: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("bookingpg: failed to scan row")
)
