package storage

import "errors"

// Общие сигнальные ошибки хранилищ бронирований.
// Конкретные реализации оборачивают их своими префиксами,
// сервисный слой сверяется с этими значениями через errors.Is.
var (
	// ErrDuplicateKey попытка создать бронирование на занятый слот
	ErrDuplicateKey = errors.New("storage: booking already exists for slot")

	// ErrNotFound бронирование не найдено
	ErrNotFound = errors.New("storage: booking not found")
)
