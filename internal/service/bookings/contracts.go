package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/broadcast"
)

// BookingStore интерфейс хранилища бронирований.
// Create обязан атомарно отвергать дубликат ключа.
type BookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Get(ctx context.Context, key string) (*domain.Booking, error)
	Delete(ctx context.Context, key string) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// AuditLog интерфейс append-only журнала событий бронирования
type AuditLog interface {
	Append(booking *domain.Booking, reason string) error
}

// Broadcaster интерфейс рассылки событий изменения слотов
type Broadcaster interface {
	Publish(event broadcast.Event) int
}

// SlotLocker интерфейс поключевой блокировки слотов
type SlotLocker interface {
	Lock(ctx context.Context, key string) error
	Unlock(key string)
}

// NameSanitizer интерфейс санации отображаемых имён
type NameSanitizer interface {
	Sanitize(raw string) (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
